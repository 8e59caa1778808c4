package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest alta de material en el catálogo.
type CreateMaterialRequest struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	CatID           *int64          `json:"cat_id"`
	Brand           string          `json:"brand"`
	Model           string          `json:"model"`
	Specification   string          `json:"specification"`
	Description     string          `json:"description"`
	Unit            string          `json:"unit"`
	Supplier        string          `json:"supplier"`
	SupplierContact string          `json:"supplier_contact"`
	MinStock        decimal.Decimal `json:"min_stock"`
	MaxStock        decimal.Decimal `json:"max_stock"`
	SafetyStock     decimal.Decimal `json:"safety_stock"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ProjectID       *int64          `json:"project_id"`
	Status          string          `json:"status"`
}

// UpdateMaterialRequest patch parcial de material.
type UpdateMaterialRequest struct {
	Name            *string          `json:"name"`
	CatID           *int64           `json:"cat_id"`
	Brand           *string          `json:"brand"`
	Model           *string          `json:"model"`
	Specification   *string          `json:"specification"`
	Description     *string          `json:"description"`
	Unit            *string          `json:"unit"`
	Supplier        *string          `json:"supplier"`
	SupplierContact *string          `json:"supplier_contact"`
	MinStock        *decimal.Decimal `json:"min_stock"`
	MaxStock        *decimal.Decimal `json:"max_stock"`
	SafetyStock     *decimal.Decimal `json:"safety_stock"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	ProjectID       *int64           `json:"project_id"`
	Status          *string          `json:"status"`
}

// MaterialResponse material con su existencia total agregada.
type MaterialResponse struct {
	ID              int64           `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	CatID           *int64          `json:"cat_id,omitempty"`
	Brand           string          `json:"brand,omitempty"`
	Model           string          `json:"model,omitempty"`
	Specification   string          `json:"specification,omitempty"`
	Description     string          `json:"description,omitempty"`
	Unit            string          `json:"unit"`
	Supplier        string          `json:"supplier,omitempty"`
	SupplierContact string          `json:"supplier_contact,omitempty"`
	MinStock        decimal.Decimal `json:"min_stock"`
	MaxStock        decimal.Decimal `json:"max_stock"`
	SafetyStock     decimal.Decimal `json:"safety_stock"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ProjectID       *int64          `json:"project_id,omitempty"`
	Status          string          `json:"status"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// MaterialListQuery filtros del listado de materiales.
type MaterialListQuery struct {
	PageRequest
	CatID   *int64 `query:"cat_id"`
	Keyword string `query:"keyword"`
	Status  string `query:"status"`
}

// CategoryResponse categoría del catálogo de materiales.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	MainCat     string    `json:"main_cat"`
	SubCat      string    `json:"sub_cat,omitempty"`
	CodePrefix  string    `json:"code_prefix,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
