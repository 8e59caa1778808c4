package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProcurementRequest alta de orden de compra.
type CreateProcurementRequest struct {
	OrderNo         string          `json:"order_no"`
	MaterialID      *int64          `json:"material_id"`
	MaterialName    string          `json:"material_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Supplier        string          `json:"supplier"`
	SupplierContact string          `json:"supplier_contact"`
	OrderDate       *Date           `json:"order_date"`
	DeliveryDate    *Date           `json:"delivery_date"`
	ProjectID       *int64          `json:"project_id"`
	TaskID          *int64          `json:"task_id"`
}

// UpdateProcurementRequest patch parcial de orden de compra.
type UpdateProcurementRequest struct {
	MaterialName       *string          `json:"material_name"`
	Quantity           *decimal.Decimal `json:"quantity"`
	Unit               *string          `json:"unit"`
	UnitPrice          *decimal.Decimal `json:"unit_price"`
	Supplier           *string          `json:"supplier"`
	SupplierContact    *string          `json:"supplier_contact"`
	OrderDate          *Date            `json:"order_date"`
	DeliveryDate       *Date            `json:"delivery_date"`
	ActualDeliveryDate *Date            `json:"actual_delivery_date"`
	Status             *string          `json:"status"`
}

// ApproveProcurementRequest decisión de aprobación de una orden.
type ApproveProcurementRequest struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment"`
}

// ProcurementResponse orden de compra con su monto total calculado.
type ProcurementResponse struct {
	ID                 int64           `json:"id"`
	OrderNo            string          `json:"order_no"`
	MaterialID         *int64          `json:"material_id,omitempty"`
	MaterialName       string          `json:"material_name"`
	Quantity           decimal.Decimal `json:"quantity"`
	Unit               string          `json:"unit,omitempty"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	Supplier           string          `json:"supplier,omitempty"`
	SupplierContact    string          `json:"supplier_contact,omitempty"`
	OrderDate          *time.Time      `json:"order_date,omitempty"`
	DeliveryDate       *time.Time      `json:"delivery_date,omitempty"`
	ActualDeliveryDate *time.Time      `json:"actual_delivery_date,omitempty"`
	Status             string          `json:"status"`
	ApproverID         *int64          `json:"approver_id,omitempty"`
	ApprovedAt         *time.Time      `json:"approved_at,omitempty"`
	ProjectID          *int64          `json:"project_id,omitempty"`
	TaskID             *int64          `json:"task_id,omitempty"`
	CreatedBy          *int64          `json:"created_by,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProcurementListQuery filtros del listado de órdenes.
type ProcurementListQuery struct {
	PageRequest
	Status     string `query:"status"`
	MaterialID *int64 `query:"material_id"`
	ProjectID  *int64 `query:"project_id"`
}
