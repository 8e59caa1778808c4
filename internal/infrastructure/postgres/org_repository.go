package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)
var _ repository.TeamRepository = (*TeamRepo)(nil)

// DepartmentRepo implementación de DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de departamentos.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create inserta un departamento y rellena su ID.
func (r *DepartmentRepo) Create(ctx context.Context, dept *entity.Department) error {
	query := `
		INSERT INTO departments (name, code, leader_id, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id`
	err := r.q.QueryRow(ctx, query, dept.Name, dept.Code, dept.LeaderID, dept.Description).Scan(&dept.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// GetByCode obtiene un departamento por su código.
func (r *DepartmentRepo) GetByCode(ctx context.Context, code string) (*entity.Department, error) {
	var d entity.Department
	err := r.q.QueryRow(ctx,
		`SELECT id, name, code, leader_id, description, created_at, updated_at FROM departments WHERE code = $1`,
		code,
	).Scan(&d.ID, &d.Name, &d.Code, &d.LeaderID, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// List devuelve todos los departamentos.
func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, code, leader_id, description, created_at, updated_at FROM departments ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.LeaderID, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// TeamRepo implementación de TeamRepository sobre PostgreSQL.
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador de equipos.
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create inserta un equipo y rellena su ID.
func (r *TeamRepo) Create(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO teams (name, code, dept_id, leader_id, specialty, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		team.Name, team.Code, team.DeptID, team.LeaderID, team.Specialty, team.Description,
	).Scan(&team.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// GetByCode obtiene un equipo por su código.
func (r *TeamRepo) GetByCode(ctx context.Context, code string) (*entity.Team, error) {
	var t entity.Team
	err := r.q.QueryRow(ctx,
		`SELECT id, name, code, dept_id, leader_id, specialty, description, created_at, updated_at FROM teams WHERE code = $1`,
		code,
	).Scan(&t.ID, &t.Name, &t.Code, &t.DeptID, &t.LeaderID, &t.Specialty, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// List devuelve todos los equipos.
func (r *TeamRepo) List(ctx context.Context) ([]*entity.Team, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, code, dept_id, leader_id, specialty, description, created_at, updated_at FROM teams ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var out []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.DeptID, &t.LeaderID, &t.Specialty, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
