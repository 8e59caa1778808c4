package repository

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// UserFilter filtros opcionales para listar usuarios.
type UserFilter struct {
	DeptID *int64
	Role   string
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentRepository puerto de lectura/escritura de departamentos.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *entity.Department) error
	GetByCode(ctx context.Context, code string) (*entity.Department, error)
	List(ctx context.Context) ([]*entity.Department, error)
}

// TeamRepository puerto de lectura/escritura de equipos.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByCode(ctx context.Context, code string) (*entity.Team, error)
	List(ctx context.Context) ([]*entity.Team, error)
}
