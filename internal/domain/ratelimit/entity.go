// internal/domain/ratelimit/entity.go
package ratelimit

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Identifier types used as rate-limit keys.
const (
	IdentifierIP   = "ip"
	IdentifierUser = "user"
)

// Record is one sliding-window attempt counter, keyed by
// (identifier, identifier_type, action). Created lazily on first attempt.
type Record struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Identifier     string       `json:"identifier" db:"identifier"`
	IdentifierType string       `json:"identifier_type" db:"identifier_type"`
	Action         string       `json:"action" db:"action"`
	Attempts       int          `json:"attempts" db:"attempts"`
	WindowStart    time.Time    `json:"window_start" db:"window_start"`
	BlockedUntil   sql.NullTime `json:"blocked_until" db:"blocked_until"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Policy is a per-call-site attempt budget. The numbers are configuration,
// not constants: login 5/60m, register 3/60m, profile update 10/60m.
type Policy struct {
	MaxAttempts   int
	WindowMinutes int
}
