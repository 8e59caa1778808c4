package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn       = "in"       // entrada
	MovementTypeOut      = "out"      // salida
	MovementTypeAdjust   = "adjust"   // ajuste
	MovementTypeTransfer = "transfer" // traslado entre almacenes
)

// Estados de control de calidad de un lote en stock.
const (
	QCStatusPending    = "pending"
	QCStatusPass       = "pass"
	QCStatusFail       = "fail"
	QCStatusQuarantine = "quarantine"
)

// StockRecord saldo vivo de un material en un almacén (opcionalmente por lote).
// Invariante: Quantity >= 0 en todo momento; una salida que dejaría el saldo en
// negativo se rechaza antes de mutar nada.
type StockRecord struct {
	ID                 int64
	MaterialID         int64
	BatchNo            string
	Quantity           decimal.Decimal
	Warehouse          string
	Location           string
	QCStatus           string
	ProcurementOrderID *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LedgerEntry registro inmutable de un movimiento de inventario: captura el saldo
// antes y después de la mutación. Se crea exactamente una vez por movimiento y
// nunca se actualiza ni se borra (pista de auditoría append-only).
type LedgerEntry struct {
	ID             int64
	TransactionID  string // agrupa los dos asientos de un traslado
	MaterialID     int64
	StockID        int64
	Type           string
	Quantity       decimal.Decimal // positiva en entradas, negativa en salidas
	BeforeQty      decimal.Decimal
	AfterQty       decimal.Decimal
	RelatedTaskID  *int64
	RelatedOrderID *int64
	OperatorID     int64
	OperatorName   string
	Remark         string
	CreatedAt      time.Time
}
