// internal/repository/postgres/session_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/swayamn72/Aegis2.0/internal/domain/session"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, user_type, session_token, refresh_token,
       ip_address, user_agent, expires_at, revoked, revoked_at, revoked_reason,
       last_activity, created_at, updated_at`

func scanSession(row pgx.Row) (*session.Session, error) {
	var s session.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.UserType, &s.SessionToken, &s.RefreshToken,
		&s.IPAddress, &s.UserAgent, &s.ExpiresAt, &s.Revoked, &s.RevokedAt, &s.RevokedReason,
		&s.LastActivity, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return &s, nil
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	query := `
		INSERT INTO user_sessions (id, user_id, user_type, session_token, refresh_token,
		                           ip_address, user_agent, expires_at, revoked, last_activity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		s.ID, s.UserID, s.UserType, s.SessionToken, s.RefreshToken,
		s.IPAddress, s.UserAgent, s.ExpiresAt, s.Revoked, s.LastActivity,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID retrieves a session regardless of state; liveness checks belong
// to the caller.
func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM user_sessions WHERE id = $1`
	return scanSession(r.db.QueryRow(ctx, query, id))
}

// RevokeByRefreshToken atomically revokes the live session holding this
// refresh token and returns it. The WHERE clause only matches a non-revoked,
// non-expired row, so of two concurrent refresh calls exactly one gets the
// session back; the loser sees ErrNotFound.
func (r *SessionRepository) RevokeByRefreshToken(ctx context.Context, refreshToken, reason string) (*session.Session, error) {
	query := `
		UPDATE user_sessions
		SET revoked = true, revoked_at = now(), revoked_reason = NULLIF($2, ''), updated_at = now()
		WHERE refresh_token = $1 AND revoked = false AND expires_at > now()
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, refreshToken, reason))
}

// Revoke marks a single session revoked. Revoking an already-revoked
// session is a no-op success.
func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE user_sessions
		SET revoked = true, revoked_at = now(), revoked_reason = NULLIF($2, ''), updated_at = now()
		WHERE id = $1 AND revoked = false
	`
	if _, err := r.db.Exec(ctx, query, id, reason); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAll revokes every live session owned by the principal, regardless of
// principal type, and returns the affected session ids.
func (r *SessionRepository) RevokeAll(ctx context.Context, userID uuid.UUID, reason string) ([]uuid.UUID, error) {
	query := `
		UPDATE user_sessions
		SET revoked = true, revoked_at = now(), revoked_reason = NULLIF($2, ''), updated_at = now()
		WHERE user_id = $1 AND revoked = false
		RETURNING id
	`
	rows, err := r.db.Query(ctx, query, userID, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke sessions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan revoked session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TouchActivity updates last_activity for a live session.
func (r *SessionRepository) TouchActivity(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE user_sessions SET last_activity = now(), updated_at = now() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to update session activity: %w", err)
	}
	return nil
}
