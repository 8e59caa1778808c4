package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido más datos del usuario.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // segundos
	User        UserResponse `json:"user"`
}

// RefreshResponse token renovado.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// CreateUserRequest alta de usuario (solo admin).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RealName string `json:"real_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	DeptID   *int64 `json:"dept_id"`
	TeamID   *int64 `json:"team_id"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserRequest patch parcial de usuario; solo se aplican los campos presentes.
type UpdateUserRequest struct {
	RealName *string `json:"real_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	DeptID   *int64  `json:"dept_id"`
	TeamID   *int64  `json:"team_id"`
	IsActive *bool   `json:"is_active"`
}

// UserResponse representación pública de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	RealName    string     `json:"real_name"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	DeptID      *int64     `json:"dept_id,omitempty"`
	TeamID      *int64     `json:"team_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserListQuery filtros del listado de usuarios.
type UserListQuery struct {
	PageRequest
	DeptID *int64 `query:"dept_id"`
	Role   string `query:"role"`
}
