package repository

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// TaskFilter filtros opcionales para listar tareas.
type TaskFilter struct {
	ProjectID *int64
	Status    string
	ManagerID *int64
	Limit     int
	Offset    int
}

// TaskProjectStats agregados de tareas de un proyecto.
type TaskProjectStats struct {
	Total       int
	Completed   int
	AvgProgress float64
}

// TaskRepository define el puerto de persistencia de tareas.
//
// Update aplica el patch completo de la fila con chequeo de versión optimista:
// si expectedVersion > 0 la actualización solo procede cuando la versión
// almacenada coincide (compare-and-increment atómico en una sola sentencia);
// con expectedVersion == 0 la escritura es forzada. En ambos casos una
// actualización aceptada incrementa la versión en exactamente 1.
// Devuelve ErrVersionConflict si la versión no coincide y ErrNotFound si la
// tarea no existe; la fila queda intacta en ambos fallos.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task, expectedVersion int) error
	Delete(ctx context.Context, id int64) error
	StatsByProject(ctx context.Context, projectID int64) (TaskProjectStats, error)
}
