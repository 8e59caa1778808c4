package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest alta de proyecto de construcción.
type CreateProjectRequest struct {
	ProjectNo   string          `json:"project_no"`
	YachtName   string          `json:"yacht_name"`
	YachtModel  string          `json:"yacht_model"`
	ClientName  string          `json:"client_name"`
	Status      string          `json:"status"`
	StartDate   *Date           `json:"start_date"`
	PlannedEnd  *Date           `json:"planned_end"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	Description string          `json:"description"`
}

// UpdateProjectRequest patch parcial de proyecto.
type UpdateProjectRequest struct {
	YachtName   *string          `json:"yacht_name"`
	YachtModel  *string          `json:"yacht_model"`
	ClientName  *string          `json:"client_name"`
	Status      *string          `json:"status"`
	StartDate   *Date            `json:"start_date"`
	PlannedEnd  *Date            `json:"planned_end"`
	ActualEnd   *Date            `json:"actual_end"`
	TotalBudget *decimal.Decimal `json:"total_budget"`
	Description *string          `json:"description"`
}

// ProjectResponse proyecto con estadísticas de tareas agregadas.
type ProjectResponse struct {
	ID              int64           `json:"id"`
	ProjectNo       string          `json:"project_no"`
	YachtName       string          `json:"yacht_name"`
	YachtModel      string          `json:"yacht_model,omitempty"`
	ClientName      string          `json:"client_name,omitempty"`
	Status          string          `json:"status"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	PlannedEnd      *time.Time      `json:"planned_end,omitempty"`
	ActualEnd       *time.Time      `json:"actual_end,omitempty"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	Description     string          `json:"description,omitempty"`
	CreatedBy       *int64          `json:"created_by,omitempty"`
	TotalTasks      int             `json:"total_tasks"`
	CompletedTasks  int             `json:"completed_tasks"`
	ProgressPercent int             `json:"progress_percent"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProjectListQuery filtros del listado de proyectos.
type ProjectListQuery struct {
	PageRequest
	Status string `query:"status"`
}
