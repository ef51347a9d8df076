// internal/pkg/token/claims.go
package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Temporary token purposes. A temp token is only accepted by the operation
// matching its purpose.
const (
	PurposeVerifyEmail   = "verify_email"
	PurposeResetPassword = "reset_password"
)

// AccessClaims is the payload of a short-lived bearer token. Subject carries
// the principal id and ID the jti; SessionID points at the server-side
// session that must still be live for the token to be accepted.
type AccessClaims struct {
	UserType  string `json:"user_type"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// TempClaims is the payload of a single-purpose temporary token used for
// email verification and password reset. It carries no session linkage.
type TempClaims struct {
	UserType  string `json:"user_type"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
