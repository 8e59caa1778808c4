package postgres

import (
	"context"
	"fmt"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create inserta una notificación y rellena su ID.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications
			(user_id, title, content, type, category, related_type, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, now())
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		n.UserID, n.Title, n.Content, n.Type, n.Category, n.RelatedType, n.RelatedID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListByUser devuelve las notificaciones del usuario, las más recientes primero.
// isRead nil trae todas; con valor filtra por leídas/no leídas.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64, isRead *bool, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, content, type, category, related_type, related_id, is_read, read_at, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2::boolean IS NULL OR is_read = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, userID, isRead, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Content, &n.Type, &n.Category,
			&n.RelatedType, &n.RelatedID, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

// CountUnread cuenta las notificaciones sin leer del usuario.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// MarkRead marca como leída una notificación del usuario. false si no existe o no es suya.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = now() WHERE id = $1 AND user_id = $2 AND is_read = false`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	// Ya estaba leída también cuenta como éxito; solo falla si no existe.
	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2)`, id, userID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}
	return exists, nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = now() WHERE user_id = $1 AND is_read = false`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

// Delete elimina una notificación del usuario. false si no existe o no es suya.
func (r *NotificationRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
