package repository

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// MaterialFilter filtros opcionales para listar materiales.
type MaterialFilter struct {
	CatID   *int64
	Keyword string // busca en código y nombre
	Limit   int
	Offset  int
}

// MaterialRepository define el puerto de persistencia del catálogo de materiales.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id int64) (*entity.Material, error)
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	List(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)
	ListCategories(ctx context.Context) ([]*entity.MaterialCategory, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id int64) error
}
