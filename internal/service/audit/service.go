// internal/service/audit/service.go
package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/audit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository is the persistence contract for audit entries. Implemented by
// postgres.AuditRepository.
type Repository interface {
	Insert(ctx context.Context, e *audit.Entry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*audit.Entry, error)
	ListFailuresSince(ctx context.Context, since time.Time) ([]*audit.Entry, error)
}

// Service records security-relevant events. Logging must never break the
// operation being audited, so write failures are swallowed after a warning.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogAction writes one entry. Errors are logged, never returned.
func (s *Service) LogAction(ctx context.Context, action string, success bool, failureReason string, ev audit.Event) {
	entry := &audit.Entry{
		ID:        uuid.New(),
		UserID:    ev.UserID,
		SessionID: ev.SessionID,
		Action:    action,
		Success:   success,
		Details:   ev.Details,
		CreatedAt: time.Now(),
	}
	entry.UserType = nullString(ev.UserType)
	entry.Resource = nullString(ev.Resource)
	if id, err := uuid.Parse(ev.ResourceID); err == nil {
		entry.ResourceID = &id
	}
	entry.IPAddress = nullString(ev.IPAddress)
	entry.UserAgent = nullString(ev.UserAgent)
	entry.RequestID = nullString(ev.RequestID)
	entry.FailureReason = nullString(failureReason)

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit entry",
			zap.String("action", action),
			zap.Bool("success", success),
			zap.Error(err))
	}
}

// LogAuthAttempt records a login, register, refresh or logout outcome.
func (s *Service) LogAuthAttempt(ctx context.Context, action string, success bool, failureReason string, ev audit.Event) {
	ev.Resource = "auth"
	s.LogAction(ctx, action, success, failureReason, ev)
}

// GetUserActivity returns the most recent entries for one principal.
func (s *Service) GetUserActivity(ctx context.Context, userID uuid.UUID, limit int) ([]*audit.Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// GetSecurityEvents returns failed actions recorded since the cutoff.
func (s *Service) GetSecurityEvents(ctx context.Context, since time.Time) ([]*audit.Entry, error) {
	return s.repo.ListFailuresSince(ctx, since)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
