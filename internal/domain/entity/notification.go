package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypeInfo    = "info"
	NotificationTypeWarning = "warning"
	NotificationTypeError   = "error"
	NotificationTypeSuccess = "success"
)

// Categorías de notificación.
const (
	NotificationCategoryTask        = "task"
	NotificationCategoryProcurement = "procurement"
	NotificationCategoryInventory   = "inventory"
	NotificationCategorySystem      = "system"
)

// Notification aviso dirigido a un usuario concreto.
type Notification struct {
	ID          int64
	UserID      int64
	Title       string
	Content     string
	Type        string
	Category    string
	RelatedType string
	RelatedID   *int64
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
