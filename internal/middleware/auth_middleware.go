// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/swayamn72/Aegis2.0/internal/domain/auth"
	"github.com/swayamn72/Aegis2.0/internal/domain/organization"
	"github.com/swayamn72/Aegis2.0/internal/pkg/response"
	authsvc "github.com/swayamn72/Aegis2.0/internal/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	orchestrator *authsvc.Orchestrator
	admins       authsvc.AdminService
	orgs         authsvc.OrganizationService
}

func NewAuthMiddleware(orchestrator *authsvc.Orchestrator, admins authsvc.AdminService, orgs authsvc.OrganizationService) *AuthMiddleware {
	return &AuthMiddleware{
		orchestrator: orchestrator,
		admins:       admins,
		orgs:         orgs,
	}
}

// Auth validates the bearer token and the session it references. A revoked
// session rejects the request even if the token itself has not expired.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.orchestrator.ValidateToken(c.Request.Context(), tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.Subject)
		c.Set("user_type", claims.UserType)
		c.Set("session_id", claims.SessionID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// AdminOnly requires an admin principal, re-checked against the database so
// a deactivated admin is cut off immediately regardless of token state.
// MUST be used after Auth().
func (m *AuthMiddleware) AdminOnly(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserType(c) != auth.UserTypeAdmin {
			response.Forbidden(c, "admin access required")
			return
		}

		adminID, ok := GetUserID(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			return
		}

		a, err := m.admins.GetByID(c.Request.Context(), adminID)
		if err != nil || !a.IsActive {
			response.Forbidden(c, "admin access required")
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if a.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				response.Forbidden(c, "insufficient role")
				return
			}
		}

		c.Next()
	}
}

// OrganizationOnly requires an approved organization principal, re-checked
// against the database so approval revocations take effect immediately.
// MUST be used after Auth().
func (m *AuthMiddleware) OrganizationOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserType(c) != auth.UserTypeOrganization {
			response.Forbidden(c, "organization access required")
			return
		}

		orgID, ok := GetUserID(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			return
		}

		org, err := m.orgs.GetByID(c.Request.Context(), orgID)
		if err != nil || org.ApprovalStatus != organization.ApprovalApproved {
			response.Forbidden(c, "organization approval required")
			return
		}

		c.Next()
	}
}

// SelfOnly requires the :id path parameter to match the authenticated
// principal. Admins bypass the check.
func (m *AuthMiddleware) SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserType(c) == auth.UserTypeAdmin {
			c.Next()
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			return
		}

		pathID, err := uuid.Parse(c.Param(param))
		if err != nil || pathID != userID {
			response.Forbidden(c, "cannot act on another account")
			return
		}

		c.Next()
	}
}

// extractToken pulls the access token from the Authorization header, with
// a cookie fallback for browser clients.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
