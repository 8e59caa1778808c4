package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Si el
// material nunca tuvo stock en ese almacén, materializa primero la fila con
// saldo cero y la bloquea: un SELECT FOR UPDATE sobre cero filas no bloquea
// nada, y dos primeras entradas concurrentes se pisarían el saldo entre sí.
func (r *StockRepo) GetForUpdate(ctx context.Context, materialID int64, warehouse string) (*entity.StockRecord, error) {
	query := `
		SELECT id, material_id, batch_no, quantity, warehouse, location, qc_status,
		       procurement_order_id, created_at, updated_at
		FROM inventory_stock
		WHERE material_id = $1 AND warehouse = $2
		FOR UPDATE`
	var s entity.StockRecord
	scan := func() error {
		return r.q.QueryRow(ctx, query, materialID, warehouse).Scan(
			&s.ID, &s.MaterialID, &s.BatchNo, &s.Quantity, &s.Warehouse, &s.Location,
			&s.QCStatus, &s.ProcurementOrderID, &s.CreatedAt, &s.UpdatedAt,
		)
	}
	err := scan()
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = r.q.Exec(ctx, `
			INSERT INTO inventory_stock
				(material_id, batch_no, quantity, warehouse, location, qc_status,
				 created_at, updated_at)
			VALUES ($1, '', 0, $2, '', $3, now(), now())
			ON CONFLICT (material_id, warehouse) DO NOTHING`,
			materialID, warehouse, entity.QCStatusPending,
		)
		if err != nil {
			return nil, fmt.Errorf("init stock row: %w", err)
		}
		err = scan()
	}
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo (por material y almacén) y rellena el ID.
func (r *StockRepo) Upsert(ctx context.Context, record *entity.StockRecord) error {
	query := `
		INSERT INTO inventory_stock
			(material_id, batch_no, quantity, warehouse, location, qc_status,
			 procurement_order_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (material_id, warehouse)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              batch_no = EXCLUDED.batch_no,
		              location = EXCLUDED.location,
		              qc_status = EXCLUDED.qc_status,
		              procurement_order_id = EXCLUDED.procurement_order_id,
		              updated_at = now()
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		record.MaterialID, record.BatchNo, record.Quantity, record.Warehouse,
		record.Location, record.QCStatus, record.ProcurementOrderID,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List devuelve registros de stock según filtros, ordenados por material y almacén.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockRecord, error) {
	query := `
		SELECT id, material_id, batch_no, quantity, warehouse, location, qc_status,
		       procurement_order_id, created_at, updated_at
		FROM inventory_stock
		WHERE ($1::bigint IS NULL OR material_id = $1)
		  AND ($2 = '' OR warehouse = $2)
		ORDER BY material_id, warehouse
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.MaterialID, filter.Warehouse, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(
			&s.ID, &s.MaterialID, &s.BatchNo, &s.Quantity, &s.Warehouse, &s.Location,
			&s.QCStatus, &s.ProcurementOrderID, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// TotalByMaterial suma el stock de un material en todos los almacenes.
func (r *StockRepo) TotalByMaterial(ctx context.Context, materialID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_stock WHERE material_id = $1`,
		materialID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// LowStock devuelve los materiales activos cuyo stock agregado está por debajo de
// su mínimo configurado. Una sola consulta: la instantánea es consistente.
func (r *StockRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT m.id, m.code, m.name, COALESCE(SUM(s.quantity), 0) AS current_stock, m.min_stock
		FROM materials m
		LEFT JOIN inventory_stock s ON s.material_id = m.id
		WHERE m.status = 'active' AND m.min_stock > 0
		GROUP BY m.id, m.code, m.name, m.min_stock
		HAVING COALESCE(SUM(s.quantity), 0) < m.min_stock
		ORDER BY m.code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.MaterialID, &row.MaterialCode, &row.MaterialName, &row.CurrentStock, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del libro de movimientos sobre PostgreSQL.
// La tabla es append-only: solo INSERT y lecturas.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserta un asiento y rellena su ID.
func (r *LedgerRepo) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO inventory_ledger
			(transaction_id, material_id, stock_id, type, quantity, before_qty, after_qty,
			 related_task_id, related_order_id, operator_id, operator_name, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		entry.TransactionID, entry.MaterialID, entry.StockID, entry.Type,
		entry.Quantity, entry.BeforeQty, entry.AfterQty,
		entry.RelatedTaskID, entry.RelatedOrderID,
		entry.OperatorID, entry.OperatorName, entry.Remark, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// List devuelve asientos del más reciente al más antiguo.
func (r *LedgerRepo) List(ctx context.Context, filter repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, transaction_id, material_id, stock_id, type, quantity, before_qty, after_qty,
		       related_task_id, related_order_id, operator_id, operator_name, remark, created_at
		FROM inventory_ledger
		WHERE ($1::bigint IS NULL OR material_id = $1)
		  AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.MaterialID, filter.Type, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var out []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.TransactionID, &e.MaterialID, &e.StockID, &e.Type,
			&e.Quantity, &e.BeforeQty, &e.AfterQty,
			&e.RelatedTaskID, &e.RelatedOrderID,
			&e.OperatorID, &e.OperatorName, &e.Remark, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
