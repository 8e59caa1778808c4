package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// Service escribe y consulta el log de auditoría. Las escrituras son
// fire-and-forget: un fallo al auditar nunca hace fallar la operación auditada.
type Service struct {
	repo repository.AuditRepository
	log  zerolog.Logger
}

// NewService construye el servicio de auditoría.
func NewService(repo repository.AuditRepository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record persiste un registro de auditoría en segundo plano.
func (s *Service) Record(entry *entity.AuditLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error().Err(err).
				Str("action", entry.Action).
				Str("resource", entry.ResourceType).
				Msg("no se pudo escribir el registro de auditoría")
		}
	}()
}

// RecordLogin deja rastro de un inicio de sesión.
func (s *Service) RecordLogin(_ context.Context, userID int64, username, ip, userAgent string) {
	s.Record(&entity.AuditLog{
		UserID:       &userID,
		Username:     username,
		Action:       entity.AuditActionLogin,
		ResourceType: "auth",
		IPAddress:    ip,
		UserAgent:    userAgent,
	})
}

// RecordLogout deja rastro de un cierre de sesión.
func (s *Service) RecordLogout(_ context.Context, userID int64, username, ip, userAgent string) {
	s.Record(&entity.AuditLog{
		UserID:       &userID,
		Username:     username,
		Action:       entity.AuditActionLogout,
		ResourceType: "auth",
		IPAddress:    ip,
		UserAgent:    userAgent,
	})
}

// List consulta el log con filtros. Las fechas del query usan formato 2006-01-02.
func (s *Service) List(ctx context.Context, q dto.AuditListQuery) ([]dto.AuditLogResponse, error) {
	q.DefaultPage()
	filter := repository.AuditFilter{
		UserID:       q.UserID,
		Action:       q.Action,
		ResourceType: q.ResourceType,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
	if q.StartDate != "" {
		if t, err := time.Parse("2006-01-02", q.StartDate); err == nil {
			filter.StartDate = &t
		}
	}
	if q.EndDate != "" {
		if t, err := time.Parse("2006-01-02", q.EndDate); err == nil {
			end := t.Add(24 * time.Hour)
			filter.EndDate = &end
		}
	}
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Username:     l.Username,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			BeforeData:   l.BeforeData,
			AfterData:    l.AfterData,
			IPAddress:    l.IPAddress,
			UserAgent:    l.UserAgent,
			CreatedAt:    l.CreatedAt,
		})
	}
	return out, nil
}

// Stats agrega el log de auditoría de los últimos days días.
func (s *Service) Stats(ctx context.Context, days int) (*dto.AuditStatsResponse, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	stats, err := s.repo.Stats(ctx, since)
	if err != nil {
		return nil, err
	}
	return &dto.AuditStatsResponse{
		PeriodDays:      days,
		TotalOperations: stats.TotalOperations,
		ByAction:        toCountDTOs(stats.ByAction),
		ByResource:      toCountDTOs(stats.ByResource),
		ActiveUsers:     toCountDTOs(stats.ActiveUsers),
	}, nil
}

// UserActivity resume la actividad de un usuario en los últimos days días.
func (s *Service) UserActivity(ctx context.Context, userID int64, days int) (*dto.UserActivityResponse, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	counts, err := s.repo.ActivitySummary(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return &dto.UserActivityResponse{
		UserID:     userID,
		PeriodDays: days,
		ByAction:   toCountDTOs(counts),
	}, nil
}

func toCountDTOs(counts []repository.AuditCount) []dto.AuditCountDTO {
	out := make([]dto.AuditCountDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.AuditCountDTO{Label: c.Label, Count: c.Count})
	}
	return out
}
