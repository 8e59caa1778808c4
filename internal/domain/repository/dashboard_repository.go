package repository

import (
	"context"
	"time"
)

// StatusCount conteo de tareas por estado.
type StatusCount struct {
	Status string
	Count  int
}

// ProjectProgressRow progreso medio de las tareas de un proyecto activo.
type ProjectProgressRow struct {
	ProjectID   int64
	YachtName   string
	Status      string
	AvgProgress float64
}

// DashboardRepository consultas de solo lectura para el panel de control.
// Se recalculan en cada llamada; a esta escala no se materializa nada.
type DashboardRepository interface {
	CountActiveProjects(ctx context.Context) (int, error)
	CountTasksPlannedOn(ctx context.Context, day time.Time) (int, error)
	CountPendingProcurement(ctx context.Context) (int, error)
	TaskDistribution(ctx context.Context) ([]StatusCount, error)
	ProjectProgress(ctx context.Context, limit int) ([]ProjectProgressRow, error)
}
