package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/api/dto"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/service"
)

// TenantHandler serves the tenant settings surface.
type TenantHandler struct {
	tenantService service.TenantService
	logger        *logger.Logger
}

// NewTenantHandler creates a new tenant handler.
func NewTenantHandler(tenantService service.TenantService, logger *logger.Logger) *TenantHandler {
	return &TenantHandler{tenantService: tenantService, logger: logger}
}

// GetSettings returns (and lazily creates) a tenant's settings.
func (h *TenantHandler) GetSettings(c *gin.Context) {
	resp, err := h.tenantService.GetSettings(c.Request.Context(), c.Param("tenant_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSettings applies a partial settings update.
func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.tenantService.UpdateSettings(c.Request.Context(), c.Param("tenant_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetCommandPermission changes one command's access level.
func (h *TenantHandler) SetCommandPermission(c *gin.Context) {
	var req dto.SetCommandPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.tenantService.SetCommandPermission(c.Request.Context(), c.Param("tenant_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAntiSpam replaces the tenant's anti-spam policy.
func (h *TenantHandler) UpdateAntiSpam(c *gin.Context) {
	var req dto.UpdateAntiSpamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.tenantService.UpdateAntiSpam(c.Request.Context(), c.Param("tenant_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
