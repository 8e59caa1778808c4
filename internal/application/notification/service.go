package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// Service gestiona las notificaciones de usuario y emite los avisos generados
// por otros módulos (stock bajo, tareas retrasadas, aprobaciones de compra).
type Service struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	cache    UnreadCache
	log      zerolog.Logger
}

// NewService construye el servicio. cache puede ser nil (todo va a SQL).
func NewService(repo repository.NotificationRepository, userRepo repository.UserRepository, cache UnreadCache, log zerolog.Logger) *Service {
	return &Service{repo: repo, userRepo: userRepo, cache: cache, log: log}
}

// Create da de alta una notificación e invalida el contador cacheado del destinatario.
func (s *Service) Create(ctx context.Context, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if in.UserID == 0 || in.Title == "" {
		return nil, domain.ErrValidation
	}
	nType := in.Type
	if nType == "" {
		nType = entity.NotificationTypeInfo
	}
	n := &entity.Notification{
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Type:      nType,
		Category:  in.Category,
		RelatedID: in.RelatedID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	s.invalidate(ctx, in.UserID)
	return toResponse(n), nil
}

// List devuelve las notificaciones del usuario, opcionalmente solo las no leídas.
func (s *Service) List(ctx context.Context, userID int64, q dto.NotificationListQuery) ([]dto.NotificationResponse, error) {
	q.DefaultPage()
	var isRead *bool
	if q.UnreadOnly {
		f := false
		isRead = &f
	}
	items, err := s.repo.ListByUser(ctx, userID, isRead, q.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, *toResponse(n))
	}
	return out, nil
}

// UnreadCount devuelve el conteo de no leídas con cache-aside: primero Redis,
// en miss o fallo consulta SQL y repuebla el cache.
func (s *Service) UnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error) {
	if s.cache != nil {
		if count, ok, err := s.cache.Get(ctx, userID); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache de no leídas caído, usando SQL")
		} else if ok {
			return &dto.UnreadCountResponse{Count: count}, nil
		}
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, int64(count)); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("no se pudo poblar el cache de no leídas")
		}
	}
	return &dto.UnreadCountResponse{Count: int64(count)}, nil
}

// MarkRead marca una notificación propia como leída.
func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.invalidate(ctx, userID)
	return nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Delete elimina una notificación propia.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.invalidate(ctx, userID)
	return nil
}

// NotifyLowStock avisa a jefes de departamento y admins que un material quedó
// bajo mínimo. Los fallos solo se loguean.
func (s *Service) NotifyLowStock(ctx context.Context, material *entity.Material, current decimal.Decimal) {
	recipients := s.usersByRoles(ctx, entity.RoleDeptManager, entity.RoleAdmin)
	title := fmt.Sprintf("Stock bajo mínimo: %s", material.Name)
	content := fmt.Sprintf("El material %s (%s) tiene %s %s en stock, por debajo del mínimo de %s.",
		material.Name, material.Code, current.String(), material.Unit, material.MinStock.String())
	for _, u := range recipients {
		s.emit(ctx, &entity.Notification{
			UserID:    u.ID,
			Title:     title,
			Content:   content,
			Type:      entity.NotificationTypeWarning,
			Category:  entity.NotificationCategoryInventory,
			RelatedID: &material.ID,
			CreatedAt: time.Now(),
		})
	}
}

// NotifyTaskDelayed avisa al responsable de la tarea que pasó a retrasada.
func (s *Service) NotifyTaskDelayed(ctx context.Context, task *entity.Task) {
	if task.ManagerID == nil {
		return
	}
	content := fmt.Sprintf("La tarea %s (%s) pasó a estado retrasado.", task.Name, task.TaskNo)
	if task.DelayReason != "" {
		content = fmt.Sprintf("%s Motivo: %s", content, task.DelayReason)
	}
	s.emit(ctx, &entity.Notification{
		UserID:    *task.ManagerID,
		Title:     fmt.Sprintf("Tarea retrasada: %s", task.Name),
		Content:   content,
		Type:      entity.NotificationTypeWarning,
		Category:  entity.NotificationCategoryTask,
		RelatedID: &task.ID,
		CreatedAt: time.Now(),
	})
}

// NotifyProcurementDecision avisa al creador de la orden del resultado de la aprobación.
func (s *Service) NotifyProcurementDecision(ctx context.Context, order *entity.ProcurementOrder, approved bool) {
	if order.CreatedBy == nil {
		return
	}
	title := fmt.Sprintf("Orden de compra %s aprobada", order.OrderNo)
	nType := entity.NotificationTypeSuccess
	if !approved {
		title = fmt.Sprintf("Orden de compra %s rechazada", order.OrderNo)
		nType = entity.NotificationTypeWarning
	}
	s.emit(ctx, &entity.Notification{
		UserID:    *order.CreatedBy,
		Title:     title,
		Content:   fmt.Sprintf("Material: %s, cantidad: %s.", order.MaterialName, order.Quantity.String()),
		Type:      nType,
		Category:  entity.NotificationCategoryProcurement,
		RelatedID: &order.ID,
		CreatedAt: time.Now(),
	})
}

func (s *Service) emit(ctx context.Context, n *entity.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Int64("user_id", n.UserID).Str("title", n.Title).Msg("no se pudo crear la notificación")
		return
	}
	s.invalidate(ctx, n.UserID)
}

func (s *Service) usersByRoles(ctx context.Context, roles ...entity.Role) []*entity.User {
	var out []*entity.User
	for _, role := range roles {
		users, err := s.userRepo.List(ctx, repository.UserFilter{Role: string(role), Limit: 500})
		if err != nil {
			s.log.Warn().Err(err).Str("role", string(role)).Msg("no se pudieron resolver destinatarios")
			continue
		}
		out = append(out, users...)
	}
	return out
}

func (s *Service) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("no se pudo invalidar el cache de no leídas")
	}
}

func toResponse(n *entity.Notification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Type:      n.Type,
		Category:  n.Category,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
