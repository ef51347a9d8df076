// internal/handlers/admin/admin_handler.go
package admin

import (
	"net/http"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/middleware"
	"github.com/swayamn72/Aegis2.0/internal/pkg/response"
	auditsvc "github.com/swayamn72/Aegis2.0/internal/service/audit"
	orgsvc "github.com/swayamn72/Aegis2.0/internal/service/organization"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	orgs   *orgsvc.Service
	audits *auditsvc.Service
	logger *zap.Logger
}

func NewAdminHandler(orgs *orgsvc.Service, audits *auditsvc.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		orgs:   orgs,
		audits: audits,
		logger: logger,
	}
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ApproveOrganization marks a pending organization approved.
func (h *AdminHandler) ApproveOrganization(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid organization id", nil)
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.orgs.Approve(c.Request.Context(), orgID, adminID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Organization approved", nil)
}

// RejectOrganization marks a pending organization rejected with a reason.
func (h *AdminHandler) RejectOrganization(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid organization id", nil)
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.orgs.Reject(c.Request.Context(), orgID, adminID, req.Reason); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Organization rejected", nil)
}

// UserActivity returns recent audit entries for one principal.
func (h *AdminHandler) UserActivity(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	entries, err := h.audits.GetUserActivity(c.Request.Context(), userID, 50)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "user activity", entries)
}

// SecurityEvents returns failed actions from the last 24 hours.
func (h *AdminHandler) SecurityEvents(c *gin.Context) {
	since := time.Now().Add(-24 * time.Hour)

	entries, err := h.audits.GetSecurityEvents(c.Request.Context(), since)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "security events", entries)
}
