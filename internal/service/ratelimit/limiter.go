// internal/service/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/ratelimit"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/repository/postgres"

	"go.uber.org/zap"
)

// Limiter is the sliding-window attempt counter. The counter state lives in
// PostgreSQL; each CheckAndIncrement runs in a transaction holding a row
// lock on the key so concurrent attempts can't race past the limit.
type Limiter struct {
	db     *postgres.DB
	repo   *postgres.RateLimitRepository
	logger *zap.Logger
}

func NewLimiter(db *postgres.DB, repo *postgres.RateLimitRepository, logger *zap.Logger) *Limiter {
	return &Limiter{
		db:     db,
		repo:   repo,
		logger: logger,
	}
}

// CheckAndIncrement records one attempt for the key and returns
// ErrRateLimited once the budget is exhausted. While a block is active the
// counter is left untouched.
func (l *Limiter) CheckAndIncrement(ctx context.Context, identifier, identifierType, action string, p ratelimit.Policy) error {
	tx, err := l.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rate limit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rec, err := l.repo.GetForUpdate(ctx, tx, identifier, identifierType, action)
	if err != nil {
		return err
	}

	next, allowed, dirty := ratelimit.Advance(rec, time.Now(), p)
	if dirty {
		if rec == nil {
			next.Identifier = identifier
			next.IdentifierType = identifierType
			next.Action = action
			err = l.repo.Insert(ctx, tx, &next)
		} else {
			err = l.repo.Update(ctx, tx, &next)
		}
		if err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit rate limit tx: %w", err)
		}
	}

	if !allowed {
		l.logger.Warn("rate limit exceeded",
			zap.String("identifier", identifier),
			zap.String("identifier_type", identifierType),
			zap.String("action", action),
		)
		return xerrors.ErrRateLimited
	}
	return nil
}

// IsBlocked is a pure read: it reports whether the key is inside an active
// block without consuming an attempt. Callers use it to short-circuit
// before a credential check so lookups don't burn budget unfairly.
func (l *Limiter) IsBlocked(ctx context.Context, identifier, identifierType, action string) (bool, error) {
	rec, err := l.repo.Get(ctx, identifier, identifierType, action)
	if err != nil {
		return false, err
	}
	return ratelimit.Blocked(rec, time.Now()), nil
}

// Reset clears the counter for a key.
func (l *Limiter) Reset(ctx context.Context, identifier, identifierType, action string) error {
	return l.repo.Delete(ctx, identifier, identifierType, action)
}
