// internal/domain/auth/dto.go
package auth

import "github.com/google/uuid"

// Principal type tags. Login tries credential match in this fixed order:
// player, then admin, then organization. First match wins.
const (
	UserTypePlayer       = "player"
	UserTypeAdmin        = "admin"
	UserTypeOrganization = "organization"
)

// LoginRequest is the credential payload shared by all principal types.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest dispatches on UserType; player registrations require
// Username, organization registrations require OrgName, OwnerName, Country
// and Description.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required"`

	// Player fields
	Username string `json:"username,omitempty"`

	// Organization fields
	OrgName     string `json:"org_name,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// UserInfo is the sanitized principal view returned on successful auth.
// Password hashes and lockout bookkeeping never leave the service layer.
type UserInfo struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username,omitempty"`
	OrgName        string    `json:"org_name,omitempty"`
	UserType       string    `json:"user_type"`
	Verified       bool      `json:"verified"`
	ApprovalStatus string    `json:"approval_status,omitempty"`
}

// AuthResponse is returned from login and registration.
type AuthResponse struct {
	Message      string   `json:"message"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	SessionID    string   `json:"session_id"`
	User         UserInfo `json:"user"`
}

// TokenResponse is returned from a refresh-token exchange.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	SessionID    string `json:"session_id"`
}
