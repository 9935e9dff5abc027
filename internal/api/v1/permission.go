package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/api/dto"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/service"
)

// PermissionHandler exposes permission resolution to the command gateway.
type PermissionHandler struct {
	permissionService service.PermissionService
	logger            *logger.Logger
}

// NewPermissionHandler creates a new permission handler.
func NewPermissionHandler(permissionService service.PermissionService, logger *logger.Logger) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService, logger: logger}
}

// Resolve answers whether an actor may run a command in a tenant. The
// response reason distinguishes missing permission from lapsed access so the
// gateway can word the reply accordingly.
func (h *PermissionHandler) Resolve(c *gin.Context) {
	var req dto.ResolvePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	decision := h.permissionService.CheckCommand(c.Request.Context(), req.TenantID, req.Actor, req.Command)
	c.JSON(http.StatusOK, &dto.PermissionDecisionResponse{
		Allowed: decision.Allowed,
		Reason:  decision.Reason,
	})
}
