// internal/domain/audit/entity.go
package audit

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Event carries the optional request context for one audit entry.
type Event struct {
	UserID     *uuid.UUID
	UserType   string
	SessionID  *uuid.UUID
	Resource   string
	ResourceID string
	IPAddress  string
	UserAgent  string
	RequestID  string
	Details    map[string]any
}

// Entry is one append-only audit record. Principal fields are nullable
// because failed logins have no resolved principal.
type Entry struct {
	ID            uuid.UUID              `json:"id" db:"id"`
	UserID        *uuid.UUID             `json:"user_id" db:"user_id"`
	UserType      sql.NullString         `json:"user_type" db:"user_type"`
	SessionID     *uuid.UUID             `json:"session_id" db:"session_id"`
	Action        string                 `json:"action" db:"action"`
	Resource      sql.NullString         `json:"resource" db:"resource"`
	ResourceID    *uuid.UUID             `json:"resource_id" db:"resource_id"`
	IPAddress     sql.NullString         `json:"ip_address" db:"ip_address"`
	UserAgent     sql.NullString         `json:"user_agent" db:"user_agent"`
	Success       bool                   `json:"success" db:"success"`
	FailureReason sql.NullString         `json:"failure_reason" db:"failure_reason"`
	RequestID     sql.NullString         `json:"request_id" db:"request_id"`
	Details       map[string]interface{} `json:"details" db:"details"`
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
}
