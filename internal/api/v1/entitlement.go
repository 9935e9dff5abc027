package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/api/dto"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/service"
)

// EntitlementHandler serves entitlement management. These endpoints are for
// the operator surface; the permission resolver guards the chat-side
// equivalents.
type EntitlementHandler struct {
	entitlementService service.EntitlementService
	logger             *logger.Logger
}

// NewEntitlementHandler creates a new entitlement handler.
func NewEntitlementHandler(entitlementService service.EntitlementService, logger *logger.Logger) *EntitlementHandler {
	return &EntitlementHandler{entitlementService: entitlementService, logger: logger}
}

// Activate grants an entitlement.
func (h *EntitlementHandler) Activate(c *gin.Context) {
	var req dto.ActivateEntitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.entitlementService.Activate(c.Request.Context(), c.Param("tenant_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Extend adds days to an existing time-boxed entitlement.
func (h *EntitlementHandler) Extend(c *gin.Context) {
	var req dto.ExtendEntitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.entitlementService.Extend(c.Request.Context(), c.Param("tenant_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate clears the entitlement back to the default mode.
func (h *EntitlementHandler) Deactivate(c *gin.Context) {
	if err := h.entitlementService.Deactivate(c.Request.Context(), c.Param("tenant_id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Status reports the tenant's entitlement state.
func (h *EntitlementHandler) Status(c *gin.Context) {
	resp, err := h.entitlementService.Status(c.Request.Context(), c.Param("tenant_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
