package dto

import (
	"encoding/json"
	"time"
)

// AuditLogResponse registro del log de auditoría.
type AuditLogResponse struct {
	ID           int64           `json:"id"`
	UserID       *int64          `json:"user_id,omitempty"`
	Username     string          `json:"username,omitempty"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   *int64          `json:"resource_id,omitempty"`
	BeforeData   json.RawMessage `json:"before_data,omitempty"`
	AfterData    json.RawMessage `json:"after_data,omitempty"`
	IPAddress    string          `json:"ip_address,omitempty"`
	UserAgent    string          `json:"user_agent,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AuditListQuery filtros del listado de auditoría.
type AuditListQuery struct {
	PageRequest
	UserID       *int64 `query:"user_id"`
	Action       string `query:"action"`
	ResourceType string `query:"resource_type"`
	StartDate    string `query:"start_date"`
	EndDate      string `query:"end_date"`
}

// AuditCountDTO pareja etiqueta/conteo en agregados de auditoría.
type AuditCountDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AuditStatsResponse agregados del log de auditoría en una ventana de días.
type AuditStatsResponse struct {
	PeriodDays      int             `json:"period_days"`
	TotalOperations int             `json:"total_operations"`
	ByAction        []AuditCountDTO `json:"by_action"`
	ByResource      []AuditCountDTO `json:"by_resource"`
	ActiveUsers     []AuditCountDTO `json:"active_users"`
}

// UserActivityResponse resumen de actividad de un usuario.
type UserActivityResponse struct {
	UserID     int64           `json:"user_id"`
	PeriodDays int             `json:"period_days"`
	ByAction   []AuditCountDTO `json:"by_action"`
}
