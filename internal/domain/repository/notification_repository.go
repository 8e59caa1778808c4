package repository

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia de notificaciones.
// MarkRead y Delete devuelven false cuando la notificación no existe o no
// pertenece al usuario.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID int64, isRead *bool, limit int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) (bool, error)
}
