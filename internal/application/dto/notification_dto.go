package dto

import "time"

// CreateNotificationRequest alta manual de notificación (uso administrativo).
type CreateNotificationRequest struct {
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	RelatedID *int64 `json:"related_id"`
}

// NotificationResponse notificación de un usuario.
type NotificationResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	Type      string     `json:"type"`
	Category  string     `json:"category,omitempty"`
	RelatedID *int64     `json:"related_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UnreadCountResponse conteo de notificaciones sin leer.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// NotificationListQuery filtros del listado de notificaciones.
type NotificationListQuery struct {
	PageRequest
	UnreadOnly bool `query:"unread_only"`
}
