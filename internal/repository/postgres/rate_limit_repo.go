// internal/repository/postgres/rate_limit_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/swayamn72/Aegis2.0/internal/domain/ratelimit"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateLimitRepository struct {
	db *pgxpool.Pool
}

func NewRateLimitRepository(db *pgxpool.Pool) *RateLimitRepository {
	return &RateLimitRepository{db: db}
}

const rateLimitColumns = `id, identifier, identifier_type, action, attempts,
       window_start, blocked_until, created_at, updated_at`

func scanRateLimit(row pgx.Row) (*ratelimit.Record, error) {
	var rec ratelimit.Record
	err := row.Scan(
		&rec.ID, &rec.Identifier, &rec.IdentifierType, &rec.Action, &rec.Attempts,
		&rec.WindowStart, &rec.BlockedUntil, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan rate limit record: %w", err)
	}
	return &rec, nil
}

// Get reads the record for a key triple without locking. Returns nil when no
// record exists yet.
func (r *RateLimitRepository) Get(ctx context.Context, identifier, identifierType, action string) (*ratelimit.Record, error) {
	query := `
		SELECT ` + rateLimitColumns + `
		FROM rate_limits
		WHERE identifier = $1 AND identifier_type = $2 AND action = $3
	`
	return scanRateLimit(r.db.QueryRow(ctx, query, identifier, identifierType, action))
}

// GetForUpdate reads the record inside tx with a row lock, serializing
// concurrent attempts on the same key.
func (r *RateLimitRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, identifier, identifierType, action string) (*ratelimit.Record, error) {
	query := `
		SELECT ` + rateLimitColumns + `
		FROM rate_limits
		WHERE identifier = $1 AND identifier_type = $2 AND action = $3
		FOR UPDATE
	`
	return scanRateLimit(tx.QueryRow(ctx, query, identifier, identifierType, action))
}

// Insert creates the record for a key seeing its first attempt.
func (r *RateLimitRepository) Insert(ctx context.Context, tx pgx.Tx, rec *ratelimit.Record) error {
	query := `
		INSERT INTO rate_limits (id, identifier, identifier_type, action, attempts, window_start, blocked_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (identifier, identifier_type, action) DO UPDATE
		SET attempts = rate_limits.attempts + 1, updated_at = now()
	`
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := tx.Exec(ctx, query,
		rec.ID, rec.Identifier, rec.IdentifierType, rec.Action,
		rec.Attempts, rec.WindowStart, rec.BlockedUntil,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rate limit record: %w", err)
	}
	return nil
}

// Update writes back the advanced counter state.
func (r *RateLimitRepository) Update(ctx context.Context, tx pgx.Tx, rec *ratelimit.Record) error {
	query := `
		UPDATE rate_limits
		SET attempts = $2, window_start = $3, blocked_until = $4, updated_at = now()
		WHERE id = $1
	`
	_, err := tx.Exec(ctx, query, rec.ID, rec.Attempts, rec.WindowStart, rec.BlockedUntil)
	if err != nil {
		return fmt.Errorf("failed to update rate limit record: %w", err)
	}
	return nil
}

// Delete removes the record for a key, resetting its budget.
func (r *RateLimitRepository) Delete(ctx context.Context, identifier, identifierType, action string) error {
	query := `DELETE FROM rate_limits WHERE identifier = $1 AND identifier_type = $2 AND action = $3`
	if _, err := r.db.Exec(ctx, query, identifier, identifierType, action); err != nil {
		return fmt.Errorf("failed to delete rate limit record: %w", err)
	}
	return nil
}
