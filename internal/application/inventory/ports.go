package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: saldo y asiento del libro se
// escriben juntos o no se escribe ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// LowStockNotifier avisa a los responsables cuando un material queda bajo mínimo.
// Se invoca fuera de la transacción y sus fallos nunca afectan al movimiento.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, material *entity.Material, current decimal.Decimal)
}
