package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// StockFilter filtros opcionales para listar registros de stock.
type StockFilter struct {
	MaterialID *int64
	Warehouse  string
	Limit      int
	Offset     int
}

// LowStockRow resultado crudo de la consulta de alertas: un material cuyo stock
// agregado entre todos los almacenes está por debajo de su mínimo configurado.
type LowStockRow struct {
	MaterialID   int64
	MaterialCode string
	MaterialName string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
}

// StockRepository define el puerto para consultar/actualizar el saldo por material+almacén.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
	// Si no existe fila devuelve un registro con ID 0 y cantidad cero.
	GetForUpdate(ctx context.Context, materialID int64, warehouse string) (*entity.StockRecord, error)
	// Upsert inserta o actualiza el registro y rellena su ID.
	Upsert(ctx context.Context, record *entity.StockRecord) error
	List(ctx context.Context, filter StockFilter) ([]*entity.StockRecord, error)
	// TotalByMaterial suma el stock de un material en todos los almacenes.
	TotalByMaterial(ctx context.Context, materialID int64) (decimal.Decimal, error)
	// LowStock devuelve los materiales cuyo stock agregado es inferior a su mínimo,
	// calculado en una sola consulta (instantánea consistente).
	LowStock(ctx context.Context) ([]LowStockRow, error)
}

// LedgerRepository puerto del libro de movimientos (append-only: solo Create y lecturas).
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	List(ctx context.Context, filter LedgerFilter) ([]*entity.LedgerEntry, error)
}

// LedgerFilter filtros opcionales para consultar el libro de movimientos.
type LedgerFilter struct {
	MaterialID *int64
	Type       string
	Limit      int
	Offset     int
}
