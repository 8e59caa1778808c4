package analytics

import (
	"context"
	"time"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// DashboardUseCase arma el resumen operativo del astillero. Cada llamada
// recalcula sobre los datos vivos; no se materializa nada.
type DashboardUseCase struct {
	repo      repository.DashboardRepository
	stockRepo repository.StockRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, stockRepo repository.StockRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, stockRepo: stockRepo}
}

// Stats devuelve proyectos activos, tareas planificadas para hoy, compras
// pendientes de aprobación y materiales bajo mínimo.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	activeProjects, err := uc.repo.CountActiveProjects(ctx)
	if err != nil {
		return nil, err
	}
	tasksToday, err := uc.repo.CountTasksPlannedOn(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	pendingProcurement, err := uc.repo.CountPendingProcurement(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.stockRepo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		ActiveProjects:     activeProjects,
		TasksToday:         tasksToday,
		PendingProcurement: pendingProcurement,
		LowStockAlerts:     len(lowStock),
	}, nil
}

// ProjectProgress devuelve el avance medio de los primeros proyectos en curso.
func (uc *DashboardUseCase) ProjectProgress(ctx context.Context) ([]dto.ProjectProgress, error) {
	rows, err := uc.repo.ProjectProgress(ctx, 5)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectProgress, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.ProjectProgress{
			ProjectID:   p.ProjectID,
			YachtName:   p.YachtName,
			Status:      p.Status,
			AvgProgress: p.AvgProgress,
		})
	}
	return out, nil
}

// TaskDistribution devuelve el conteo de tareas por estado.
func (uc *DashboardUseCase) TaskDistribution(ctx context.Context) ([]dto.StatusCountDTO, error) {
	rows, err := uc.repo.TaskDistribution(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusCountDTO, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.StatusCountDTO{Status: d.Status, Count: d.Count})
	}
	return out, nil
}
