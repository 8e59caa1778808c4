package repository

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// ProcurementFilter filtros opcionales para listar órdenes de compra.
type ProcurementFilter struct {
	Status    string
	ProjectID *int64
	Limit     int
	Offset    int
}

// ProcurementRepository define el puerto de persistencia de órdenes de compra.
type ProcurementRepository interface {
	Create(ctx context.Context, order *entity.ProcurementOrder) error
	GetByID(ctx context.Context, id int64) (*entity.ProcurementOrder, error)
	List(ctx context.Context, filter ProcurementFilter) ([]*entity.ProcurementOrder, error)
	Update(ctx context.Context, order *entity.ProcurementOrder) error
}
