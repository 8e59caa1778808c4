package entity

import "time"

// User representa un usuario del astillero (operario, jefe de equipo, jefe de departamento o admin).
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	DeptID       *int64
	TeamID       *int64
	RealName     string
	Phone        string
	Email        string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Department departamento del astillero (casco, interiorismo, electricidad, etc.).
type Department struct {
	ID          int64
	Name        string
	Code        string
	LeaderID    *int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Team equipo de trabajo dentro de un departamento.
type Team struct {
	ID          int64
	Name        string
	Code        string
	DeptID      *int64
	LeaderID    *int64
	Specialty   string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
