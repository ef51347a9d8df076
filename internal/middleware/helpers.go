// internal/middleware/helpers.go
package middleware

import (
	"github.com/swayamn72/Aegis2.0/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetClaims returns the verified access claims set by Auth().
func GetClaims(c *gin.Context) (*token.AccessClaims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*token.AccessClaims)
	return claims, ok
}

// MustGetClaims returns the access claims or panics. Only for handlers
// registered behind Auth().
func MustGetClaims(c *gin.Context) *token.AccessClaims {
	claims, ok := GetClaims(c)
	if !ok {
		panic("claims not found in context")
	}
	return claims
}

// GetUserID returns the authenticated principal id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetUserType returns the authenticated principal's type tag, or "".
func GetUserType(c *gin.Context) string {
	claims, ok := GetClaims(c)
	if !ok {
		return ""
	}
	return claims.UserType
}

// GetSessionID returns the session id bound to the access token.
func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// IsAuthenticated checks if the request carries verified claims.
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("claims")
	return exists
}
