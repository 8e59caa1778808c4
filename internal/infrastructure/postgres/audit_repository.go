package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del log de auditoría sobre PostgreSQL.
// Tabla append-only: solo INSERT y lecturas agregadas.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta un registro de auditoría.
func (r *AuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs
			(user_id, username, action, resource_type, resource_id,
			 before_data, after_data, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		log.UserID, log.Username, log.Action, log.ResourceType, log.ResourceID,
		log.BeforeData, log.AfterData, log.IPAddress, log.UserAgent, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List devuelve registros del más reciente al más antiguo según filtros.
func (r *AuditRepo) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, username, action, resource_type, resource_id,
		       before_data, after_data, ip_address, user_agent, created_at
		FROM audit_logs
		WHERE ($1::bigint IS NULL OR user_id = $1)
		  AND ($2 = '' OR action = $2)
		  AND ($3 = '' OR resource_type = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at < $5)
		ORDER BY created_at DESC, id DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query,
		filter.UserID, filter.Action, filter.ResourceType,
		filter.StartDate, filter.EndDate, filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Username, &l.Action, &l.ResourceType, &l.ResourceID,
			&l.BeforeData, &l.AfterData, &l.IPAddress, &l.UserAgent, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// Stats agrega el log desde una fecha: total, por acción, por recurso y usuarios más activos.
func (r *AuditRepo) Stats(ctx context.Context, since time.Time) (repository.AuditStats, error) {
	var stats repository.AuditStats
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE created_at >= $1`, since,
	).Scan(&stats.TotalOperations)
	if err != nil {
		return stats, fmt.Errorf("audit stats total: %w", err)
	}

	stats.ByAction, err = r.countBy(ctx,
		`SELECT action, COUNT(*) FROM audit_logs WHERE created_at >= $1 GROUP BY action ORDER BY COUNT(*) DESC`, since)
	if err != nil {
		return stats, err
	}
	stats.ByResource, err = r.countBy(ctx,
		`SELECT resource_type, COUNT(*) FROM audit_logs WHERE created_at >= $1 GROUP BY resource_type ORDER BY COUNT(*) DESC`, since)
	if err != nil {
		return stats, err
	}
	stats.ActiveUsers, err = r.countBy(ctx,
		`SELECT username, COUNT(*) FROM audit_logs WHERE created_at >= $1 AND username <> '' GROUP BY username ORDER BY COUNT(*) DESC LIMIT 10`, since)
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// ActivitySummary agrupa las operaciones de un usuario por acción desde una fecha.
func (r *AuditRepo) ActivitySummary(ctx context.Context, userID int64, since time.Time) ([]repository.AuditCount, error) {
	return r.countBy(ctx,
		`SELECT action, COUNT(*) FROM audit_logs WHERE user_id = $2 AND created_at >= $1 GROUP BY action ORDER BY COUNT(*) DESC`,
		since, userID)
}

func (r *AuditRepo) countBy(ctx context.Context, query string, args ...any) ([]repository.AuditCount, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit aggregate: %w", err)
	}
	defer rows.Close()

	var out []repository.AuditCount
	for rows.Next() {
		var c repository.AuditCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("scan audit aggregate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
