package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para la gestión de usuarios (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un usuario: valida rol, hashea password con bcrypt y persiste.
// Devuelve ErrDuplicate si el username ya existe.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" || in.RealName == "" {
		return nil, domain.ErrValidation
	}
	role := entity.Role(in.Role)
	if in.Role == "" {
		role = entity.RoleWorker
	}
	if !role.IsValid() {
		return nil, domain.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		DeptID:       in.DeptID,
		TeamID:       in.TeamID,
		RealName:     in.RealName,
		Phone:        in.Phone,
		Email:        in.Email,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// List devuelve usuarios con filtros de departamento y rol.
func (uc *UserUseCase) List(ctx context.Context, q dto.UserListQuery) ([]dto.UserResponse, error) {
	q.DefaultPage()
	users, err := uc.repo.List(ctx, repository.UserFilter{
		DeptID: q.DeptID,
		Role:   q.Role,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Update aplica un patch parcial: solo muta los campos presentes en el request.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.RealName != nil {
		user.RealName = *in.RealName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.IsValid() {
			return nil, domain.ErrValidation
		}
		user.Role = role
	}
	if in.DeptID != nil {
		user.DeptID = in.DeptID
	}
	if in.TeamID != nil {
		user.TeamID = in.TeamID
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// DefaultPassword contraseña asignada al restablecer una cuenta.
const DefaultPassword = "123456"

// ResetPassword restablece la contraseña del usuario a la contraseña por defecto.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id int64) error {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, id, string(hash))
}

// Delete elimina un usuario. El que borra no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, id, requesterID int64) error {
	if id == requesterID {
		return domain.ErrValidation
	}
	return uc.repo.Delete(ctx, id)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		RealName:    u.RealName,
		Phone:       u.Phone,
		Email:       u.Email,
		Role:        string(u.Role),
		DeptID:      u.DeptID,
		TeamID:      u.TeamID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
