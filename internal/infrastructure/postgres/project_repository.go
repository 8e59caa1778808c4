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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de proyectos.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, project_no, yacht_name, yacht_model, client_name, status,
	start_date, planned_end, actual_end, total_budget, description, created_by, created_at, updated_at`

// Create inserta un proyecto y rellena su ID. Devuelve ErrDuplicate si el número ya existe.
func (r *ProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects
			(project_no, yacht_name, yacht_model, client_name, status,
			 start_date, planned_end, actual_end, total_budget, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		project.ProjectNo, project.YachtName, project.YachtModel, project.ClientName, project.Status,
		project.StartDate, project.PlannedEnd, project.ActualEnd, project.TotalBudget,
		project.Description, project.CreatedBy,
	).Scan(&project.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// GetByProjectNo obtiene un proyecto por su número.
func (r *ProjectRepo) GetByProjectNo(ctx context.Context, projectNo string) (*entity.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_no = $1`, projectNo)
}

func (r *ProjectRepo) getOne(ctx context.Context, query string, arg any) (*entity.Project, error) {
	var p entity.Project
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.ProjectNo, &p.YachtName, &p.YachtModel, &p.ClientName, &p.Status,
		&p.StartDate, &p.PlannedEnd, &p.ActualEnd, &p.TotalBudget, &p.Description,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// List devuelve proyectos, los más recientes primero.
func (r *ProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(
			&p.ID, &p.ProjectNo, &p.YachtName, &p.YachtModel, &p.ClientName, &p.Status,
			&p.StartDate, &p.PlannedEnd, &p.ActualEnd, &p.TotalBudget, &p.Description,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update escribe la fila completa del proyecto.
func (r *ProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects SET
			yacht_name = $1, yacht_model = $2, client_name = $3, status = $4,
			start_date = $5, planned_end = $6, actual_end = $7,
			total_budget = $8, description = $9, updated_at = now()
		WHERE id = $10`
	tag, err := r.q.Exec(ctx, query,
		project.YachtName, project.YachtModel, project.ClientName, project.Status,
		project.StartDate, project.PlannedEnd, project.ActualEnd,
		project.TotalBudget, project.Description, project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proyecto.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
