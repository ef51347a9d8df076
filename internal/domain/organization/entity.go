// internal/domain/organization/entity.go
package organization

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Organization approval lifecycle. New organizations register as pending
// and need an admin decision before the approved-only surfaces open up;
// login itself works while pending.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Organization is the organization credential principal.
type Organization struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	OrgName         string         `json:"org_name" db:"org_name"`
	OwnerName       string         `json:"owner_name" db:"owner_name"`
	Email           string         `json:"email" db:"email"`
	Password        string         `json:"-" db:"password"`
	Country         string         `json:"country" db:"country"`
	Description     string         `json:"description" db:"description"`
	ApprovalStatus  string         `json:"approval_status" db:"approval_status"`
	ApprovedBy      *uuid.UUID     `json:"approved_by" db:"approved_by"`
	ApprovalDate    sql.NullTime   `json:"approval_date" db:"approval_date"`
	RejectionReason sql.NullString `json:"rejection_reason" db:"rejection_reason"`
	EmailVerified   bool           `json:"email_verified" db:"email_verified"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}
