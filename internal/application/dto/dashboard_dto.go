package dto

// DashboardStatsResponse contadores operativos del astillero para el panel de control.
type DashboardStatsResponse struct {
	ActiveProjects     int `json:"active_projects"`
	TasksToday         int `json:"tasks_today"`
	PendingProcurement int `json:"pending_procurement"`
	LowStockAlerts     int `json:"low_stock_alerts"`
}

// StatusCountDTO conteo de tareas por estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ProjectProgress avance medio de un proyecto activo.
type ProjectProgress struct {
	ProjectID   int64   `json:"project_id"`
	YachtName   string  `json:"yacht_name"`
	Status      string  `json:"status"`
	AvgProgress float64 `json:"avg_progress"`
}
