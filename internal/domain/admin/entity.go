// internal/domain/admin/entity.go
package admin

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Admin roles.
const (
	RoleSuperAdmin = "super_admin"
	RoleModerator  = "moderator"
	RoleSupport    = "support"
)

// Admin is the administrator credential principal. LoginAttempts and
// LockUntil implement the per-admin consecutive-failure lock (5 failures,
// 1 hour), which is independent of the per-IP rate limiter.
type Admin struct {
	ID            uuid.UUID              `json:"id" db:"id"`
	Username      string                 `json:"username" db:"username"`
	Email         string                 `json:"email" db:"email"`
	Password      string                 `json:"-" db:"password"`
	Role          string                 `json:"role" db:"role"`
	Permissions   map[string]interface{} `json:"permissions" db:"permissions"`
	IsActive      bool                   `json:"is_active" db:"is_active"`
	LastLogin     sql.NullTime           `json:"last_login" db:"last_login"`
	LoginAttempts int                    `json:"-" db:"login_attempts"`
	LockUntil     sql.NullTime           `json:"-" db:"lock_until"`
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at" db:"updated_at"`
}

// Locked reports whether the admin is currently locked out.
func (a *Admin) Locked(now time.Time) bool {
	return a.LockUntil.Valid && a.LockUntil.Time.After(now)
}

// HasPermission reports whether the permissions map grants the named
// permission. Missing keys and non-boolean values deny.
func (a *Admin) HasPermission(permission string) bool {
	v, ok := a.Permissions[permission]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
