package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// TaskNotifier avisa al responsable cuando una tarea pasa a estado retrasado.
// Se invoca fuera del camino crítico y sus fallos no afectan a la actualización.
type TaskNotifier interface {
	NotifyTaskDelayed(ctx context.Context, task *entity.Task)
}

// TaskUseCase aplica reglas de negocio para tareas del cronograma, incluido el
// control de concurrencia optimista por versión.
type TaskUseCase struct {
	repo        repository.TaskRepository
	projectRepo repository.ProjectRepository
	notifier    TaskNotifier
	log         zerolog.Logger
}

// NewTaskUseCase construye el caso de uso. notifier puede ser nil.
func NewTaskUseCase(repo repository.TaskRepository, projectRepo repository.ProjectRepository, notifier TaskNotifier, log zerolog.Logger) *TaskUseCase {
	return &TaskUseCase{repo: repo, projectRepo: projectRepo, notifier: notifier, log: log}
}

// Create da de alta una tarea con versión inicial 1.
func (uc *TaskUseCase) Create(ctx context.Context, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if in.ProjectID == 0 || in.TaskNo == "" || in.Name == "" {
		return nil, domain.ErrValidation
	}
	// El proyecto debe existir; propaga ErrNotFound si no.
	if _, err := uc.projectRepo.GetByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.TaskStatusNotStarted
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.TaskPriorityMedium
	}
	now := time.Now()
	task := &entity.Task{
		ProjectID:        in.ProjectID,
		TaskNo:           in.TaskNo,
		Name:             in.Name,
		TaskType:         in.TaskType,
		Status:           status,
		Priority:         priority,
		PlanStart:        in.PlanStart.Ptr(),
		PlanEnd:          in.PlanEnd.Ptr(),
		PlannedWorkHours: in.PlannedWorkHours,
		DeptID:           in.DeptID,
		TeamID:           in.TeamID,
		ManagerID:        in.ManagerID,
		ParentID:         in.ParentID,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return taskToResponse(task), nil
}

// GetByID obtiene una tarea por ID.
func (uc *TaskUseCase) GetByID(ctx context.Context, id int64) (*dto.TaskResponse, error) {
	task, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return taskToResponse(task), nil
}

// List devuelve tareas con filtros de proyecto, estado y responsable.
func (uc *TaskUseCase) List(ctx context.Context, q dto.TaskListQuery) ([]dto.TaskResponse, error) {
	q.DefaultPage()
	tasks, err := uc.repo.List(ctx, repository.TaskFilter{
		ProjectID: q.ProjectID,
		Status:    q.Status,
		ManagerID: q.ManagerID,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *taskToResponse(t))
	}
	return out, nil
}

// Update aplica un patch parcial con chequeo de versión optimista: in.Version es
// la versión que el cliente leyó y debe coincidir con la almacenada (0 fuerza la
// escritura). Devuelve ErrVersionConflict si otro usuario escribió antes; la fila
// queda intacta y el cliente debe releer.
func (uc *TaskUseCase) Update(ctx context.Context, id int64, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasDelayed := task.Status == entity.TaskStatusDelayed

	if in.Name != nil {
		task.Name = *in.Name
	}
	if in.TaskType != nil {
		task.TaskType = *in.TaskType
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.PlanStart != nil {
		task.PlanStart = in.PlanStart.Ptr()
	}
	if in.PlanEnd != nil {
		task.PlanEnd = in.PlanEnd.Ptr()
	}
	if in.ActualStart != nil {
		task.ActualStart = in.ActualStart.Ptr()
	}
	if in.ActualEnd != nil {
		task.ActualEnd = in.ActualEnd.Ptr()
	}
	if in.PlannedWorkHours != nil {
		task.PlannedWorkHours = *in.PlannedWorkHours
	}
	if in.ActualWorkHours != nil {
		task.ActualWorkHours = *in.ActualWorkHours
	}
	if in.DeptID != nil {
		task.DeptID = in.DeptID
	}
	if in.TeamID != nil {
		task.TeamID = in.TeamID
	}
	if in.ManagerID != nil {
		task.ManagerID = in.ManagerID
	}
	if in.InspectorID != nil {
		task.InspectorID = in.InspectorID
	}
	if in.ProgressPercent != nil {
		if *in.ProgressPercent < 0 || *in.ProgressPercent > 100 {
			return nil, domain.ErrValidation
		}
		task.ProgressPercent = *in.ProgressPercent
	}
	if in.DelayReason != nil {
		task.DelayReason = *in.DelayReason
	}
	if in.DelayDays != nil {
		task.DelayDays = *in.DelayDays
	}
	task.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, task, in.Version); err != nil {
		return nil, err
	}

	// Aviso al responsable si la tarea acaba de pasar a retrasada.
	if !wasDelayed && task.Status == entity.TaskStatusDelayed {
		uc.notifyDelayed(task)
	}
	return taskToResponse(task), nil
}

// ReportWork registra horas trabajadas y avance sobre una tarea, con las
// transiciones de estado implícitas: 100% completa la tarea y fija actual_end;
// el primer avance sobre una tarea sin empezar la pasa a en curso y fija
// actual_start. La escritura bumpea la versión como cualquier actualización.
func (uc *TaskUseCase) ReportWork(ctx context.Context, id int64, in dto.ReportWorkRequest) (*dto.TaskResponse, error) {
	if in.WorkHours < 0 || in.ProgressPercent < 0 || in.ProgressPercent > 100 {
		return nil, domain.ErrValidation
	}
	task, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	task.ActualWorkHours += in.WorkHours
	if in.ProgressPercent > task.ProgressPercent {
		task.ProgressPercent = in.ProgressPercent
	}
	switch {
	case task.ProgressPercent >= 100:
		task.Status = entity.TaskStatusCompleted
		task.ProgressPercent = 100
		if task.ActualEnd == nil {
			task.ActualEnd = &now
		}
	case task.ProgressPercent > 0 && task.Status == entity.TaskStatusNotStarted:
		task.Status = entity.TaskStatusInProgress
		if task.ActualStart == nil {
			task.ActualStart = &now
		}
	}
	task.UpdatedAt = now
	if err := uc.repo.Update(ctx, task, task.Version); err != nil {
		return nil, err
	}
	return taskToResponse(task), nil
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *TaskUseCase) notifyDelayed(task *entity.Task) {
	if uc.notifier == nil {
		return
	}
	snapshot := *task
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		uc.notifier.NotifyTaskDelayed(ctx, &snapshot)
	}()
}

func taskToResponse(t *entity.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:               t.ID,
		ProjectID:        t.ProjectID,
		TaskNo:           t.TaskNo,
		Name:             t.Name,
		TaskType:         t.TaskType,
		Status:           t.Status,
		Priority:         t.Priority,
		PlanStart:        t.PlanStart,
		PlanEnd:          t.PlanEnd,
		ActualStart:      t.ActualStart,
		ActualEnd:        t.ActualEnd,
		PlannedWorkHours: t.PlannedWorkHours,
		ActualWorkHours:  t.ActualWorkHours,
		DeptID:           t.DeptID,
		TeamID:           t.TeamID,
		ManagerID:        t.ManagerID,
		InspectorID:      t.InspectorID,
		ProgressPercent:  t.ProgressPercent,
		DelayReason:      t.DelayReason,
		DelayDays:        t.DelayDays,
		Version:          t.Version,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
