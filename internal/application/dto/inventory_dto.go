package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest movimiento de inventario solicitado por un operador.
// Para type=transfer, ToWarehouse indica el almacén destino.
type TransactionRequest struct {
	MaterialID    int64           `json:"material_id"`
	Warehouse     string          `json:"warehouse"`
	ToWarehouse   string          `json:"to_warehouse"`
	Type          string          `json:"type"` // in | out | adjust | transfer
	Quantity      decimal.Decimal `json:"quantity"`
	BatchNo       string          `json:"batch_no"`
	Location      string          `json:"location"`
	RelatedTaskID *int64          `json:"related_task_id"`
	RelatedOrder  *int64          `json:"related_order_id"`
	Remark        string          `json:"remark"`
}

// TransactionResponse resultado de aplicar un movimiento.
type TransactionResponse struct {
	TransactionID string          `json:"transaction_id"`
	MaterialID    int64           `json:"material_id"`
	Warehouse     string          `json:"warehouse"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Balance       decimal.Decimal `json:"balance"`
}

// StockResponse registro de existencias por material y almacén.
type StockResponse struct {
	ID                 int64           `json:"id"`
	MaterialID         int64           `json:"material_id"`
	BatchNo            string          `json:"batch_no,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	Warehouse          string          `json:"warehouse"`
	Location           string          `json:"location,omitempty"`
	QCStatus           string          `json:"qc_status"`
	ProcurementOrderID *int64          `json:"procurement_order_id,omitempty"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// StockListQuery filtros del listado de existencias.
type StockListQuery struct {
	PageRequest
	MaterialID *int64 `query:"material_id"`
	Warehouse  string `query:"warehouse"`
}

// LedgerResponse asiento del libro de movimientos.
type LedgerResponse struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transaction_id"`
	StockID       int64           `json:"stock_id"`
	MaterialID    int64           `json:"material_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BeforeQty     decimal.Decimal `json:"before_qty"`
	AfterQty      decimal.Decimal `json:"after_qty"`
	RelatedTaskID *int64          `json:"related_task_id,omitempty"`
	RelatedOrder  *int64          `json:"related_order_id,omitempty"`
	OperatorID    int64           `json:"operator_id"`
	OperatorName  string          `json:"operator_name,omitempty"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerListQuery filtros del historial de movimientos.
type LedgerListQuery struct {
	PageRequest
	MaterialID *int64 `query:"material_id"`
	Type       string `query:"type"`
}

// AlertResponse material cuya existencia total está bajo el mínimo.
type AlertResponse struct {
	MaterialID   int64           `json:"material_id"`
	MaterialCode string          `json:"material_code"`
	MaterialName string          `json:"material_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Shortage     decimal.Decimal `json:"shortage"`
}
