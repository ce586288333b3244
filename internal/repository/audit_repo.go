package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-location-share/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries
		 (action, occurred_at, actor_subject, actor_role, actor_ip, status, resource, error_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.Action, entry.OccurredAt,
		nullIfEmpty(entry.Actor.Subject), nullIfEmpty(entry.Actor.Role), nullIfEmpty(entry.Actor.IP),
		entry.Status, nullIfEmpty(entry.Resource), nullIfEmpty(entry.Error))
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Recent returns the newest entries first, optionally filtered by action.
func (r *AuditRepository) Recent(ctx context.Context, action string, limit int) ([]model.AuditEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT action, occurred_at, actor_subject, actor_role, actor_ip, status, resource, error_text
		 FROM audit_entries
		 WHERE ($1 = '' OR action = $1)
		 ORDER BY occurred_at DESC, id DESC
		 LIMIT $2`,
		action, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var (
			entry                                model.AuditEntry
			occurredAt                           time.Time
			subject, role, ip, resource, errText *string
		)
		if err := rows.Scan(&entry.Action, &occurredAt, &subject, &role, &ip, &entry.Status, &resource, &errText); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.OccurredAt = occurredAt.UTC().Format(time.RFC3339Nano)
		entry.Actor = model.AuditActor{Subject: deref(subject), Role: deref(role), IP: deref(ip)}
		entry.Resource = deref(resource)
		entry.Error = deref(errText)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
