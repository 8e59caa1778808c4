package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	ProcurementStatusDraft            = "draft"
	ProcurementStatusPendingApproval  = "pending_approval"
	ProcurementStatusApproved         = "approved"
	ProcurementStatusOrdered          = "ordered"
	ProcurementStatusPartialDelivered = "partial_delivered"
	ProcurementStatusDelivered        = "delivered"
	ProcurementStatusCancelled        = "cancelled"
)

// ProcurementOrder orden de compra de material, con circuito de aprobación.
type ProcurementOrder struct {
	ID                 int64
	OrderNo            string
	MaterialID         *int64
	MaterialName       string
	Quantity           decimal.Decimal
	Unit               string
	UnitPrice          decimal.Decimal
	TotalPrice         decimal.Decimal
	Supplier           string
	SupplierContact    string
	OrderDate          *time.Time
	DeliveryDate       *time.Time
	ActualDeliveryDate *time.Time
	Status             string
	ApproverID         *int64
	ApprovedAt         *time.Time
	ProjectID          *int64
	TaskID             *int64
	CreatedBy          *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
