package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/service"
)

// RotationHandler serves rotation calendar queries.
type RotationHandler struct {
	rotationService service.RotationService
	logger          *logger.Logger
}

// NewRotationHandler creates a new rotation handler.
func NewRotationHandler(rotationService service.RotationService, logger *logger.Logger) *RotationHandler {
	return &RotationHandler{rotationService: rotationService, logger: logger}
}

// Day returns the rotation for today or an offset day (?offset=N).
func (h *RotationHandler) Day(c *gin.Context) {
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Offset must be an integer number of days").
				Mark(ierr.ErrValidation))
			return
		}
		offset = parsed
	}

	c.JSON(http.StatusOK, h.rotationService.Day(c.Request.Context(), offset))
}

// Find locates the next occurrence of a boss (?q=name).
func (h *RotationHandler) Find(c *gin.Context) {
	resp, err := h.rotationService.Find(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NextReset reports the next daily reset and the countdown to it.
func (h *RotationHandler) NextReset(c *gin.Context) {
	c.JSON(http.StatusOK, h.rotationService.NextReset(c.Request.Context()))
}
