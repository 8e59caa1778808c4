package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en el log de auditoría.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
	AuditActionLogout = "logout"
)

// AuditLog registro append-only de una operación del sistema.
type AuditLog struct {
	ID           int64
	UserID       *int64
	Username     string
	Action       string
	ResourceType string
	ResourceID   *int64
	BeforeData   json.RawMessage
	AfterData    json.RawMessage
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}
