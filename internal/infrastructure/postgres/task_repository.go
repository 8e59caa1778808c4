package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, project_id, task_no, name, task_type, status, priority,
	plan_start, plan_end, actual_start, actual_end,
	planned_work_hours, actual_work_hours,
	dept_id, team_id, manager_id, inspector_id, parent_id,
	progress_percent, delay_reason, delay_days, version, created_at, updated_at`

// Create inserta una tarea con versión 1 y rellena su ID.
func (r *TaskRepo) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks
			(project_id, task_no, name, task_type, status, priority,
			 plan_start, plan_end, actual_start, actual_end,
			 planned_work_hours, actual_work_hours,
			 dept_id, team_id, manager_id, inspector_id, parent_id,
			 progress_percent, delay_reason, delay_days, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, 1, now(), now())
		RETURNING id, version`
	err := r.q.QueryRow(ctx, query,
		task.ProjectID, task.TaskNo, task.Name, task.TaskType, task.Status, task.Priority,
		task.PlanStart, task.PlanEnd, task.ActualStart, task.ActualEnd,
		task.PlannedWorkHours, task.ActualWorkHours,
		task.DeptID, task.TeamID, task.ManagerID, task.InspectorID, task.ParentID,
		task.ProgressPercent, task.DelayReason, task.DelayDays,
	).Scan(&task.ID, &task.Version)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	var t entity.Task
	err := r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id).Scan(
		&t.ID, &t.ProjectID, &t.TaskNo, &t.Name, &t.TaskType, &t.Status, &t.Priority,
		&t.PlanStart, &t.PlanEnd, &t.ActualStart, &t.ActualEnd,
		&t.PlannedWorkHours, &t.ActualWorkHours,
		&t.DeptID, &t.TeamID, &t.ManagerID, &t.InspectorID, &t.ParentID,
		&t.ProgressPercent, &t.DelayReason, &t.DelayDays, &t.Version, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// List devuelve tareas según filtros, ordenadas por fecha planificada de inicio.
func (r *TaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1::bigint IS NULL OR project_id = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3::bigint IS NULL OR manager_id = $3)
		ORDER BY plan_start NULLS LAST, id
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, filter.ProjectID, filter.Status, filter.ManagerID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.TaskNo, &t.Name, &t.TaskType, &t.Status, &t.Priority,
			&t.PlanStart, &t.PlanEnd, &t.ActualStart, &t.ActualEnd,
			&t.PlannedWorkHours, &t.ActualWorkHours,
			&t.DeptID, &t.TeamID, &t.ManagerID, &t.InspectorID, &t.ParentID,
			&t.ProgressPercent, &t.DelayReason, &t.DelayDays, &t.Version, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Update escribe la fila completa con compare-and-increment de versión en una
// sola sentencia: el WHERE exige la versión esperada (salvo expectedVersion 0,
// que fuerza) y el SET siempre incrementa version en 1. Si no afectó filas se
// distingue entre conflicto de versión y tarea inexistente releyendo la fila.
// La nueva versión queda escrita en task.Version.
func (r *TaskRepo) Update(ctx context.Context, task *entity.Task, expectedVersion int) error {
	query := `
		UPDATE tasks SET
			name = $1, task_type = $2, status = $3, priority = $4,
			plan_start = $5, plan_end = $6, actual_start = $7, actual_end = $8,
			planned_work_hours = $9, actual_work_hours = $10,
			dept_id = $11, team_id = $12, manager_id = $13, inspector_id = $14,
			progress_percent = $15, delay_reason = $16, delay_days = $17,
			version = version + 1, updated_at = now()
		WHERE id = $18 AND ($19 = 0 OR version = $19)
		RETURNING version`
	err := r.q.QueryRow(ctx, query,
		task.Name, task.TaskType, task.Status, task.Priority,
		task.PlanStart, task.PlanEnd, task.ActualStart, task.ActualEnd,
		task.PlannedWorkHours, task.ActualWorkHours,
		task.DeptID, task.TeamID, task.ManagerID, task.InspectorID,
		task.ProgressPercent, task.DelayReason, task.DelayDays,
		task.ID, expectedVersion,
	).Scan(&task.Version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update task: %w", err)
	}
	// Ninguna fila afectada: o la tarea no existe o la versión no coincide.
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, task.ID).Scan(&exists); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrVersionConflict
}

// Delete elimina una tarea.
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// StatsByProject agrega total, completadas y avance medio de las tareas de un proyecto.
func (r *TaskRepo) StatsByProject(ctx context.Context, projectID int64) (repository.TaskProjectStats, error) {
	var stats repository.TaskProjectStats
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COALESCE(AVG(progress_percent), 0)
		FROM tasks WHERE project_id = $1`, projectID,
	).Scan(&stats.Total, &stats.Completed, &stats.AvgProgress)
	if err != nil {
		return repository.TaskProjectStats{}, fmt.Errorf("task stats: %w", err)
	}
	return stats, nil
}
