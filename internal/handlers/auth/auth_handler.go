// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"github.com/swayamn72/Aegis2.0/internal/domain/auth"
	"github.com/swayamn72/Aegis2.0/internal/middleware"
	"github.com/swayamn72/Aegis2.0/internal/pkg/response"
	authsvc "github.com/swayamn72/Aegis2.0/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookieMaxAge  = 15 * 60
	refreshCookieMaxAge = 7 * 24 * 60 * 60
)

type AuthHandler struct {
	orchestrator *authsvc.Orchestrator
	logger       *zap.Logger
}

func NewAuthHandler(orchestrator *authsvc.Orchestrator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

func clientInfo(c *gin.Context) authsvc.ClientInfo {
	return authsvc.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: middleware.GetRequestID(c),
	}
}

// setAuthCookies attaches the token cookies for browser clients. Both are
// HTTP-only, Lax, Secure; the access cookie outlives the token by nothing.
func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", accessToken, accessCookieMaxAge, "/", "", true, true)
	c.SetCookie("refresh_token", refreshToken, refreshCookieMaxAge, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.SetCookie("refresh_token", "", -1, "/", "", true, true)
}

// Login authenticates any of the three principal types.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.orchestrator.Login(c.Request.Context(), req, clientInfo(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("login successful",
		zap.String("user_id", resp.User.ID.String()),
		zap.String("user_type", resp.User.UserType),
	)

	setAuthCookies(c, resp.Token, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// Register creates a player or organization account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.orchestrator.Register(c.Request.Context(), req, clientInfo(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	setAuthCookies(c, resp.Token, resp.RefreshToken)
	c.JSON(http.StatusCreated, resp)
}

// RefreshToken rotates the caller's session.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req auth.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.orchestrator.RefreshToken(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	setAuthCookies(c, resp.Token, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the current session and clears the auth cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.MustGetClaims(c)

	if err := h.orchestrator.Logout(c.Request.Context(), claims); err != nil {
		response.FromError(c, err)
		return
	}

	clearAuthCookies(c)
	response.Success(c, http.StatusOK, "Logout successful", nil)
}

// RevokeAllSessions logs the caller out everywhere.
func (h *AuthHandler) RevokeAllSessions(c *gin.Context) {
	claims := middleware.MustGetClaims(c)

	if err := h.orchestrator.RevokeAllSessions(c.Request.Context(), claims); err != nil {
		response.FromError(c, err)
		return
	}

	clearAuthCookies(c)
	response.Success(c, http.StatusOK, "All sessions revoked successfully", nil)
}

// ForgotPassword always answers with the same generic message.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	msg, err := h.orchestrator.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, msg, nil)
}

// ResetPassword consumes a reset token from the URL path.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.orchestrator.ResetPassword(c.Request.Context(), c.Param("token"), req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset successful", nil)
}

// VerifyEmail consumes a verification token from the URL path.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.orchestrator.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Email verified successfully", nil)
}

// ResendVerification mails a fresh verification link to the caller.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	claims := middleware.MustGetClaims(c)

	if err := h.orchestrator.ResendVerification(c.Request.Context(), claims); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Verification email sent successfully", nil)
}
