// internal/domain/session/entity.go
package session

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of one authenticated device/browser
// instance. The id is embedded in access tokens; revoking the session
// invalidates every token referencing it regardless of token expiry.
type Session struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	UserID        uuid.UUID      `json:"user_id" db:"user_id"`
	UserType      string         `json:"user_type" db:"user_type"`
	SessionToken  string         `json:"-" db:"session_token"`
	RefreshToken  string         `json:"-" db:"refresh_token"`
	IPAddress     sql.NullString `json:"ip_address" db:"ip_address"`
	UserAgent     sql.NullString `json:"user_agent" db:"user_agent"`
	ExpiresAt     time.Time      `json:"expires_at" db:"expires_at"`
	Revoked       bool           `json:"revoked" db:"revoked"`
	RevokedAt     sql.NullTime   `json:"revoked_at" db:"revoked_at"`
	RevokedReason sql.NullString `json:"revoked_reason" db:"revoked_reason"`
	LastActivity  time.Time      `json:"last_activity" db:"last_activity"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// Valid reports whether the session is live: not revoked and not expired.
func (s *Session) Valid(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
