package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go-location-share/internal/model"
)

type auditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Recent(ctx context.Context, action string, limit int) ([]model.AuditEntry, error)
}

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 200
)

// AuditService records privileged actions. A failed write never fails the
// request that triggered it.
type AuditService struct {
	store auditStore
	now   func() time.Time
}

func NewAuditService(store auditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

func (s *AuditService) Log(ctx context.Context, action string, actor model.AuditActor, status string, resource string, errText string) {
	if s == nil || s.store == nil {
		return
	}

	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: s.now().UTC().Format(time.RFC3339Nano),
		Actor:      actor,
		Status:     status,
		Resource:   resource,
		Error:      errText,
	}

	// The request context may already be cancelled once the response is written.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.store.Log(writeCtx, entry); err != nil {
		slog.Warn("audit write failed", "action", action, "resource", resource, "error", err)
	}
}

// Recent lists the newest audit entries. limit is clamped to [1, MaxAuditLimit].
func (s *AuditService) Recent(ctx context.Context, action string, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	return s.store.Recent(ctx, strings.TrimSpace(action), limit)
}
