package entity

import "time"

// Tipos de tarea de construcción.
const (
	TaskTypeDesign           = "design"
	TaskTypeHullConstruction = "hull_construction"
	TaskTypeProcurement      = "procurement"
	TaskTypeOutfitting       = "outfitting"
	TaskTypeInterior         = "interior"
	TaskTypeCommissioning    = "commissioning"
)

// Estados de una tarea.
const (
	TaskStatusNotStarted = "not_started"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusDelayed    = "delayed"
	TaskStatusCancelled  = "cancelled"
)

// Prioridades de una tarea.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Task representa una tarea del cronograma de un proyecto.
// Version es el contador de bloqueo optimista: arranca en 1 y se incrementa en 1
// por cada actualización aceptada; una escritura con versión obsoleta se rechaza.
type Task struct {
	ID               int64
	ProjectID        int64
	TaskNo           string
	Name             string
	TaskType         string
	Status           string
	Priority         string
	PlanStart        *time.Time
	PlanEnd          *time.Time
	ActualStart      *time.Time
	ActualEnd        *time.Time
	PlannedWorkHours int
	ActualWorkHours  int
	DeptID           *int64
	TeamID           *int64
	ManagerID        *int64
	InspectorID      *int64
	ParentID         *int64
	ProgressPercent  int
	DelayReason      string
	DelayDays        int
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
