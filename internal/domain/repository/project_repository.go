package repository

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// ProjectFilter filtros opcionales para listar proyectos.
type ProjectFilter struct {
	Status string
	Limit  int
	Offset int
}

// ProjectRepository define el puerto de persistencia de proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	GetByProjectNo(ctx context.Context, projectNo string) (*entity.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id int64) error
}
