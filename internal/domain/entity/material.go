package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un material del catálogo.
const (
	MaterialStatusActive       = "active"
	MaterialStatusInactive     = "inactive"
	MaterialStatusDiscontinued = "discontinued"
)

// MaterialCategory categoría del catálogo de materiales (aluminio, soldadura, eléctrico...).
type MaterialCategory struct {
	ID          int64
	MainCat     string
	SubCat      string
	CodePrefix  string
	Description string
	CreatedAt   time.Time
}

// Material representa un material del catálogo del astillero.
// MinStock es el umbral de alerta: si el stock agregado cae por debajo, el material
// aparece en las alertas de inventario.
type Material struct {
	ID              int64
	CatID           *int64
	Code            string
	Name            string
	Brand           string
	Model           string
	Specification   string
	Description     string
	Unit            string
	Supplier        string
	SupplierContact string
	MinStock        decimal.Decimal
	MaxStock        decimal.Decimal
	SafetyStock     decimal.Decimal
	UnitCost        decimal.Decimal
	ProjectID       *int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
