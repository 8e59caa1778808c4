package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el panel de control.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del panel.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountActiveProjects cuenta los proyectos en curso.
func (r *DashboardRepo) CountActiveProjects(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE status = 'in_progress'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active projects: %w", err)
	}
	return count, nil
}

// CountTasksPlannedOn cuenta las tareas cuyo plan cubre el día dado y no están
// completadas ni canceladas.
func (r *DashboardRepo) CountTasksPlannedOn(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE plan_start <= $1 AND plan_end >= $1
		  AND status NOT IN ('completed', 'cancelled')`,
		day,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tasks planned: %w", err)
	}
	return count, nil
}

// CountPendingProcurement cuenta las órdenes esperando aprobación.
func (r *DashboardRepo) CountPendingProcurement(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM procurement_orders WHERE status = 'pending_approval'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending procurement: %w", err)
	}
	return count, nil
}

// TaskDistribution cuenta tareas por estado.
func (r *DashboardRepo) TaskDistribution(ctx context.Context) ([]repository.StatusCount, error) {
	rows, err := r.q.Query(ctx,
		`SELECT status, COUNT(*) FROM tasks GROUP BY status ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("task distribution: %w", err)
	}
	defer rows.Close()

	var out []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan task distribution: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ProjectProgress devuelve el avance medio de las tareas de los proyectos en curso.
func (r *DashboardRepo) ProjectProgress(ctx context.Context, limit int) ([]repository.ProjectProgressRow, error) {
	query := `
		SELECT p.id, p.yacht_name, p.status, COALESCE(AVG(t.progress_percent), 0)
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE p.status = 'in_progress'
		GROUP BY p.id, p.yacht_name, p.status
		ORDER BY p.id
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("project progress: %w", err)
	}
	defer rows.Close()

	var out []repository.ProjectProgressRow
	for rows.Next() {
		var row repository.ProjectProgressRow
		if err := rows.Scan(&row.ProjectID, &row.YachtName, &row.Status, &row.AvgProgress); err != nil {
			return nil, fmt.Errorf("scan project progress: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
