package repository

import (
	"context"
	"time"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// AuditFilter filtros opcionales para consultar el log de auditoría.
type AuditFilter struct {
	UserID       *int64
	Action       string
	ResourceType string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// AuditCount pareja etiqueta/conteo para agregados de auditoría.
type AuditCount struct {
	Label string
	Count int
}

// AuditStats agregados del log de auditoría desde una fecha.
type AuditStats struct {
	TotalOperations int
	ByAction        []AuditCount
	ByResource      []AuditCount
	ActiveUsers     []AuditCount
}

// AuditRepository define el puerto del log de auditoría (append-only).
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditLog, error)
	Stats(ctx context.Context, since time.Time) (AuditStats, error)
	// ActivitySummary agrupa las operaciones de un usuario por acción desde una fecha.
	ActivitySummary(ctx context.Context, userID int64, since time.Time) ([]AuditCount, error)
}
