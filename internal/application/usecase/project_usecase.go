package usecase

import (
	"context"
	"time"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// ProjectUseCase aplica reglas de negocio para proyectos de construcción.
// Las respuestas se enriquecen con las estadísticas de tareas del proyecto.
type ProjectUseCase struct {
	repo     repository.ProjectRepository
	taskRepo repository.TaskRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, taskRepo repository.TaskRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, taskRepo: taskRepo}
}

// Create da de alta un proyecto. Devuelve ErrDuplicate si el número ya existe.
func (uc *ProjectUseCase) Create(ctx context.Context, createdBy int64, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.ProjectNo == "" || in.YachtName == "" {
		return nil, domain.ErrValidation
	}
	status := in.Status
	if status == "" {
		status = entity.ProjectStatusPlanning
	}
	now := time.Now()
	project := &entity.Project{
		ProjectNo:   in.ProjectNo,
		YachtName:   in.YachtName,
		YachtModel:  in.YachtModel,
		ClientName:  in.ClientName,
		Status:      status,
		StartDate:   in.StartDate.Ptr(),
		PlannedEnd:  in.PlannedEnd.Ptr(),
		TotalBudget: in.TotalBudget,
		Description: in.Description,
		CreatedBy:   &createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, project), nil
}

// GetByID obtiene un proyecto con sus estadísticas de tareas.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id int64) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, project), nil
}

// List devuelve proyectos filtrados por estado, cada uno con sus estadísticas.
func (uc *ProjectUseCase) List(ctx context.Context, q dto.ProjectListQuery) ([]dto.ProjectResponse, error) {
	q.DefaultPage()
	projects, err := uc.repo.List(ctx, repository.ProjectFilter{
		Status: q.Status,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, *uc.toResponse(ctx, p))
	}
	return out, nil
}

// Update aplica un patch parcial de proyecto.
func (uc *ProjectUseCase) Update(ctx context.Context, id int64, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.YachtName != nil {
		project.YachtName = *in.YachtName
	}
	if in.YachtModel != nil {
		project.YachtModel = *in.YachtModel
	}
	if in.ClientName != nil {
		project.ClientName = *in.ClientName
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate.Ptr()
	}
	if in.PlannedEnd != nil {
		project.PlannedEnd = in.PlannedEnd.Ptr()
	}
	if in.ActualEnd != nil {
		project.ActualEnd = in.ActualEnd.Ptr()
	}
	if in.TotalBudget != nil {
		project.TotalBudget = *in.TotalBudget
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	project.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, project), nil
}

// Delete elimina un proyecto.
func (uc *ProjectUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// toResponse mapea la entidad y agrega las estadísticas de tareas. Si la consulta
// de estadísticas falla, devuelve el proyecto con contadores en cero.
func (uc *ProjectUseCase) toResponse(ctx context.Context, p *entity.Project) *dto.ProjectResponse {
	stats, err := uc.taskRepo.StatsByProject(ctx, p.ID)
	if err != nil {
		stats = repository.TaskProjectStats{}
	}
	return &dto.ProjectResponse{
		ID:              p.ID,
		ProjectNo:       p.ProjectNo,
		YachtName:       p.YachtName,
		YachtModel:      p.YachtModel,
		ClientName:      p.ClientName,
		Status:          p.Status,
		StartDate:       p.StartDate,
		PlannedEnd:      p.PlannedEnd,
		ActualEnd:       p.ActualEnd,
		TotalBudget:     p.TotalBudget,
		Description:     p.Description,
		CreatedBy:       p.CreatedBy,
		TotalTasks:      stats.Total,
		CompletedTasks:  stats.Completed,
		ProgressPercent: int(stats.AvgProgress),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
