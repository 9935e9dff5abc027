package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/config"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/integration/payments"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/types"
)

// PaymentWebhookHandler receives payment-completion events from the payment
// collaborator.
type PaymentWebhookHandler struct {
	handler *payments.Handler
	config  *config.Configuration
	logger  *logger.Logger
}

// NewPaymentWebhookHandler creates a new payment webhook handler.
func NewPaymentWebhookHandler(handler *payments.Handler, cfg *config.Configuration, logger *logger.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{handler: handler, config: cfg, logger: logger}
}

// Handle verifies the signature and applies the event. Processing failures
// after verification are logged but acknowledged with 200 so the provider
// does not retry a payload we cannot use.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read webhook payload").
			Mark(ierr.ErrValidation))
		return
	}

	signature := c.GetHeader(types.HeaderWebhookSignature)
	if err := payments.VerifySignature(payload, signature, h.config.Payments.WebhookSecret); err != nil {
		c.Error(err)
		return
	}

	var event payments.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Malformed webhook payload").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.handler.HandleEvent(c.Request.Context(), &event); err != nil {
		h.logger.Errorw("failed to apply payment event",
			"event_id", event.ID,
			"tenant_id", event.Data.TenantID,
			"error", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
