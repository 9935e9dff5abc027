package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/service"
)

// NotificationCronHandler handles scheduled notification sweeps. The
// scheduler calls these endpoints; each dispatches to every tenant that
// passes its gate and reports a summary.
type NotificationCronHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationCronHandler creates a new notification cron handler.
func NewNotificationCronHandler(
	notificationService service.NotificationService,
	logger *logger.Logger,
) *NotificationCronHandler {
	return &NotificationCronHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// DispatchRaidRotation sends today's rotation digest to gated tenants.
func (h *NotificationCronHandler) DispatchRaidRotation(c *gin.Context) {
	h.logger.Infow("starting raid rotation dispatch cron job")

	summary, err := h.notificationService.DispatchRaidRotation(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to dispatch raid rotation", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DispatchDailyReset sends the daily reset reminder to gated tenants.
func (h *NotificationCronHandler) DispatchDailyReset(c *gin.Context) {
	h.logger.Infow("starting daily reset dispatch cron job")

	summary, err := h.notificationService.DispatchDailyReset(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to dispatch daily reset reminder", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DispatchExpiryReminders messages tenants whose entitlement has lapsed.
func (h *NotificationCronHandler) DispatchExpiryReminders(c *gin.Context) {
	h.logger.Infow("starting expiry reminder dispatch cron job")

	summary, err := h.notificationService.DispatchExpiryReminders(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to dispatch expiry reminders", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
