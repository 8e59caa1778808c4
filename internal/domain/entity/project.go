package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un proyecto de construcción.
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// Project representa la construcción de un yate (un casco = un proyecto).
type Project struct {
	ID          int64
	ProjectNo   string
	YachtName   string
	YachtModel  string
	ClientName  string
	Status      string
	StartDate   *time.Time
	PlannedEnd  *time.Time
	ActualEnd   *time.Time
	TotalBudget decimal.Decimal
	Description string
	CreatedBy   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
