package payments

import (
	"context"

	"github.com/groupwarden/groupwarden/internal/api/dto"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/service"
	"github.com/groupwarden/groupwarden/internal/types"
)

// Handler applies completed payments to tenant entitlements.
type Handler struct {
	entitlements service.EntitlementService
	logger       *logger.Logger
}

// NewHandler creates a payments webhook handler.
func NewHandler(entitlements service.EntitlementService, logger *logger.Logger) *Handler {
	return &Handler{entitlements: entitlements, logger: logger}
}

// HandleEvent processes one verified webhook event. A completed payment
// extends the tenant's time-boxed entitlement; if the tenant has none yet,
// the typed extend failure triggers a fresh activation instead.
func (h *Handler) HandleEvent(ctx context.Context, event *WebhookEvent) error {
	if event.Type != EventPaymentCompleted {
		h.logger.Infow("ignoring non-completion payment event", "type", event.Type, "event_id", event.ID)
		return nil
	}

	if err := h.validate(event); err != nil {
		return err
	}

	h.logger.Infow("processing completed payment",
		"event_id", event.ID,
		"tenant_id", event.Data.TenantID,
		"amount", event.Data.Amount,
		"duration_days", event.Data.DurationDays,
		"reference", event.Data.Reference)

	owner := &dto.OwnerContactRequest{
		Name:        event.Data.Payer.Name,
		PhoneNumber: event.Data.Payer.PhoneNumber,
		ContactID:   event.Data.Payer.ContactID,
	}

	_, err := h.entitlements.Extend(ctx, event.Data.TenantID, &dto.ExtendEntitlementRequest{
		AdditionalDays: event.Data.DurationDays,
		Price:          &event.Data.Amount,
		Owner:          owner,
		ActivationRef:  event.Data.Reference,
	})
	if err == nil {
		return nil
	}
	if !ierr.IsInvalidOperation(err) && !ierr.IsNotFound(err) {
		return err
	}

	// No time-boxed entitlement to extend: activate one.
	days := event.Data.DurationDays
	mode := dto.ActivateEntitlementRequest{
		Mode:          types.EntitlementModeTimeBoxed,
		DurationDays:  &days,
		Price:         &event.Data.Amount,
		Owner:         owner,
		ActivationRef: event.Data.Reference,
	}
	_, err = h.entitlements.Activate(ctx, event.Data.TenantID, &mode)
	return err
}

func (h *Handler) validate(event *WebhookEvent) error {
	if event.Data.TenantID == "" {
		return ierr.NewError("payment event has no tenant id").
			WithHint("Payment events must carry a tenant id").
			Mark(ierr.ErrValidation)
	}
	if event.Data.DurationDays <= 0 {
		return ierr.NewErrorf("payment event has invalid duration: %d", event.Data.DurationDays).
			WithHint("Payment duration must be a positive number of days").
			Mark(ierr.ErrValidation)
	}
	return nil
}
