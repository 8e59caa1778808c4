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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador del catálogo de materiales.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, cat_id, code, name, brand, model, specification, description,
	unit, supplier, supplier_contact, min_stock, max_stock, safety_stock, unit_cost,
	project_id, status, created_at, updated_at`

// Create inserta un material y rellena su ID. Devuelve ErrDuplicate si el código ya existe.
func (r *MaterialRepo) Create(ctx context.Context, material *entity.Material) error {
	query := `
		INSERT INTO materials
			(cat_id, code, name, brand, model, specification, description,
			 unit, supplier, supplier_contact, min_stock, max_stock, safety_stock, unit_cost,
			 project_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		material.CatID, material.Code, material.Name, material.Brand, material.Model,
		material.Specification, material.Description, material.Unit,
		material.Supplier, material.SupplierContact,
		material.MinStock, material.MaxStock, material.SafetyStock, material.UnitCost,
		material.ProjectID, material.Status,
	).Scan(&material.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetByCode obtiene un material por su código de catálogo.
func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE code = $1`, code)
}

func (r *MaterialRepo) getOne(ctx context.Context, query string, arg any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.CatID, &m.Code, &m.Name, &m.Brand, &m.Model, &m.Specification, &m.Description,
		&m.Unit, &m.Supplier, &m.SupplierContact,
		&m.MinStock, &m.MaxStock, &m.SafetyStock, &m.UnitCost,
		&m.ProjectID, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List devuelve materiales filtrados por categoría y palabra clave (código o nombre).
func (r *MaterialRepo) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + `
		FROM materials
		WHERE ($1::bigint IS NULL OR cat_id = $1)
		  AND ($2 = '' OR code ILIKE '%' || $2 || '%' OR name ILIKE '%' || $2 || '%')
		ORDER BY code
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.CatID, filter.Keyword, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var out []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.CatID, &m.Code, &m.Name, &m.Brand, &m.Model, &m.Specification, &m.Description,
			&m.Unit, &m.Supplier, &m.SupplierContact,
			&m.MinStock, &m.MaxStock, &m.SafetyStock, &m.UnitCost,
			&m.ProjectID, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListCategories devuelve el catálogo completo de categorías.
func (r *MaterialRepo) ListCategories(ctx context.Context) ([]*entity.MaterialCategory, error) {
	query := `
		SELECT id, main_cat, sub_cat, code_prefix, description, created_at
		FROM material_categories
		ORDER BY main_cat, sub_cat`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list material categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.MaterialCategory
	for rows.Next() {
		var c entity.MaterialCategory
		if err := rows.Scan(&c.ID, &c.MainCat, &c.SubCat, &c.CodePrefix, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update escribe la fila completa del material.
func (r *MaterialRepo) Update(ctx context.Context, material *entity.Material) error {
	query := `
		UPDATE materials SET
			cat_id = $1, name = $2, brand = $3, model = $4, specification = $5, description = $6,
			unit = $7, supplier = $8, supplier_contact = $9,
			min_stock = $10, max_stock = $11, safety_stock = $12, unit_cost = $13,
			project_id = $14, status = $15, updated_at = now()
		WHERE id = $16`
	tag, err := r.q.Exec(ctx, query,
		material.CatID, material.Name, material.Brand, material.Model,
		material.Specification, material.Description, material.Unit,
		material.Supplier, material.SupplierContact,
		material.MinStock, material.MaxStock, material.SafetyStock, material.UnitCost,
		material.ProjectID, material.Status, material.ID,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un material del catálogo.
func (r *MaterialRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
