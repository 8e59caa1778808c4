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

var _ repository.ProcurementRepository = (*ProcurementRepo)(nil)

// ProcurementRepo implementación de ProcurementRepository sobre PostgreSQL.
type ProcurementRepo struct {
	q Querier
}

// NewProcurementRepository construye el adaptador de órdenes de compra.
func NewProcurementRepository(q Querier) *ProcurementRepo {
	return &ProcurementRepo{q: q}
}

const procurementColumns = `id, order_no, material_id, material_name, quantity, unit,
	unit_price, total_price, supplier, supplier_contact,
	order_date, delivery_date, actual_delivery_date, status,
	approver_id, approved_at, project_id, task_id, created_by, created_at, updated_at`

// Create inserta una orden y rellena su ID. Devuelve ErrDuplicate si el número ya existe.
func (r *ProcurementRepo) Create(ctx context.Context, order *entity.ProcurementOrder) error {
	query := `
		INSERT INTO procurement_orders
			(order_no, material_id, material_name, quantity, unit,
			 unit_price, total_price, supplier, supplier_contact,
			 order_date, delivery_date, status, project_id, task_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		order.OrderNo, order.MaterialID, order.MaterialName, order.Quantity, order.Unit,
		order.UnitPrice, order.TotalPrice, order.Supplier, order.SupplierContact,
		order.OrderDate, order.DeliveryDate, order.Status,
		order.ProjectID, order.TaskID, order.CreatedBy,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create procurement order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ProcurementRepo) GetByID(ctx context.Context, id int64) (*entity.ProcurementOrder, error) {
	var o entity.ProcurementOrder
	err := r.q.QueryRow(ctx, `SELECT `+procurementColumns+` FROM procurement_orders WHERE id = $1`, id).Scan(
		&o.ID, &o.OrderNo, &o.MaterialID, &o.MaterialName, &o.Quantity, &o.Unit,
		&o.UnitPrice, &o.TotalPrice, &o.Supplier, &o.SupplierContact,
		&o.OrderDate, &o.DeliveryDate, &o.ActualDeliveryDate, &o.Status,
		&o.ApproverID, &o.ApprovedAt, &o.ProjectID, &o.TaskID, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get procurement order: %w", err)
	}
	return &o, nil
}

// List devuelve órdenes, las más recientes primero.
func (r *ProcurementRepo) List(ctx context.Context, filter repository.ProcurementFilter) ([]*entity.ProcurementOrder, error) {
	query := `SELECT ` + procurementColumns + `
		FROM procurement_orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2::bigint IS NULL OR project_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.Status, filter.ProjectID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list procurement orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProcurementOrder
	for rows.Next() {
		var o entity.ProcurementOrder
		if err := rows.Scan(
			&o.ID, &o.OrderNo, &o.MaterialID, &o.MaterialName, &o.Quantity, &o.Unit,
			&o.UnitPrice, &o.TotalPrice, &o.Supplier, &o.SupplierContact,
			&o.OrderDate, &o.DeliveryDate, &o.ActualDeliveryDate, &o.Status,
			&o.ApproverID, &o.ApprovedAt, &o.ProjectID, &o.TaskID, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan procurement order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// Update escribe la fila completa de la orden.
func (r *ProcurementRepo) Update(ctx context.Context, order *entity.ProcurementOrder) error {
	query := `
		UPDATE procurement_orders SET
			material_name = $1, quantity = $2, unit = $3,
			unit_price = $4, total_price = $5, supplier = $6, supplier_contact = $7,
			order_date = $8, delivery_date = $9, actual_delivery_date = $10, status = $11,
			approver_id = $12, approved_at = $13, updated_at = now()
		WHERE id = $14`
	tag, err := r.q.Exec(ctx, query,
		order.MaterialName, order.Quantity, order.Unit,
		order.UnitPrice, order.TotalPrice, order.Supplier, order.SupplierContact,
		order.OrderDate, order.DeliveryDate, order.ActualDeliveryDate, order.Status,
		order.ApproverID, order.ApprovedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("update procurement order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
