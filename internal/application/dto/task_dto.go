package dto

import "time"

// CreateTaskRequest alta de tarea en el cronograma de un proyecto.
type CreateTaskRequest struct {
	ProjectID        int64  `json:"project_id"`
	TaskNo           string `json:"task_no"`
	Name             string `json:"name"`
	TaskType         string `json:"task_type"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
	PlanStart        *Date  `json:"plan_start"`
	PlanEnd          *Date  `json:"plan_end"`
	PlannedWorkHours int    `json:"planned_work_hours"`
	DeptID           *int64 `json:"dept_id"`
	TeamID           *int64 `json:"team_id"`
	ManagerID        *int64 `json:"manager_id"`
	ParentID         *int64 `json:"parent_id"`
}

// UpdateTaskRequest patch parcial de tarea con control de concurrencia optimista.
// Version es la versión que el cliente leyó; si no coincide con la almacenada la
// actualización se rechaza con conflicto. Version 0 (u omitida) fuerza la escritura.
type UpdateTaskRequest struct {
	Version          int     `json:"version"`
	Name             *string `json:"name"`
	TaskType         *string `json:"task_type"`
	Status           *string `json:"status"`
	Priority         *string `json:"priority"`
	PlanStart        *Date   `json:"plan_start"`
	PlanEnd          *Date   `json:"plan_end"`
	ActualStart      *Date   `json:"actual_start"`
	ActualEnd        *Date   `json:"actual_end"`
	PlannedWorkHours *int    `json:"planned_work_hours"`
	ActualWorkHours  *int    `json:"actual_work_hours"`
	DeptID           *int64  `json:"dept_id"`
	TeamID           *int64  `json:"team_id"`
	ManagerID        *int64  `json:"manager_id"`
	InspectorID      *int64  `json:"inspector_id"`
	ProgressPercent  *int    `json:"progress_percent"`
	DelayReason      *string `json:"delay_reason"`
	DelayDays        *int    `json:"delay_days"`
}

// ReportWorkRequest reporte de horas y avance sobre una tarea.
type ReportWorkRequest struct {
	WorkHours       int    `json:"work_hours"`
	ProgressPercent int    `json:"progress_percent"`
	Remark          string `json:"remark"`
}

// TaskResponse representación pública de una tarea.
type TaskResponse struct {
	ID               int64      `json:"id"`
	ProjectID        int64      `json:"project_id"`
	TaskNo           string     `json:"task_no"`
	Name             string     `json:"name"`
	TaskType         string     `json:"task_type"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	PlanStart        *time.Time `json:"plan_start,omitempty"`
	PlanEnd          *time.Time `json:"plan_end,omitempty"`
	ActualStart      *time.Time `json:"actual_start,omitempty"`
	ActualEnd        *time.Time `json:"actual_end,omitempty"`
	PlannedWorkHours int        `json:"planned_work_hours"`
	ActualWorkHours  int        `json:"actual_work_hours"`
	DeptID           *int64     `json:"dept_id,omitempty"`
	TeamID           *int64     `json:"team_id,omitempty"`
	ManagerID        *int64     `json:"manager_id,omitempty"`
	InspectorID      *int64     `json:"inspector_id,omitempty"`
	ProgressPercent  int        `json:"progress_percent"`
	DelayReason      string     `json:"delay_reason,omitempty"`
	DelayDays        int        `json:"delay_days"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TaskListQuery filtros del listado de tareas.
type TaskListQuery struct {
	PageRequest
	ProjectID *int64 `query:"project_id"`
	Status    string `query:"status"`
	ManagerID *int64 `query:"manager_id"`
}
