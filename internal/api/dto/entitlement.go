package dto

import (
	"time"

	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/groupwarden/groupwarden/internal/validator"
	"github.com/shopspring/decimal"
)

// OwnerContactRequest is the payer snapshot supplied on activation.
type OwnerContactRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	ContactID   string `json:"contact_id"`
}

// ActivateEntitlementRequest activates a tenant's entitlement. Time-boxed
// activations carry either an inclusive calendar expiry date or a duration.
type ActivateEntitlementRequest struct {
	Mode          types.EntitlementMode `json:"mode" validate:"required"`
	ExpiresOn     string                `json:"expires_on,omitempty"`
	DurationDays  *int                  `json:"duration_days,omitempty"`
	Price         *decimal.Decimal      `json:"price,omitempty"`
	Owner         *OwnerContactRequest  `json:"owner,omitempty"`
	ActivationRef string                `json:"activation_ref,omitempty"`
}

func (r *ActivateEntitlementRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Mode.Validate(); err != nil {
		return err
	}
	if r.Mode == types.EntitlementModeTimeBoxed {
		if r.ExpiresOn == "" && (r.DurationDays == nil || *r.DurationDays <= 0) {
			return ierr.NewError("time-boxed activation requires an expiry date or a positive duration").
				WithHint("Provide expires_on (YYYY-MM-DD) or duration_days").
				Mark(ierr.ErrValidation)
		}
	}
	if r.DurationDays != nil && *r.DurationDays <= 0 {
		return ierr.NewErrorf("duration_days must be positive, got %d", *r.DurationDays).
			WithHint("Duration must be a positive number of days").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ExtendEntitlementRequest extends an existing time-boxed entitlement.
type ExtendEntitlementRequest struct {
	AdditionalDays int                  `json:"additional_days" validate:"required,gt=0"`
	Price          *decimal.Decimal     `json:"price,omitempty"`
	Owner          *OwnerContactRequest `json:"owner,omitempty"`
	ActivationRef  string               `json:"activation_ref,omitempty"`
}

func (r *ExtendEntitlementRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// EntitlementStatusResponse reports a tenant's entitlement state.
type EntitlementStatusResponse struct {
	TenantID      string                `json:"tenant_id"`
	Mode          types.EntitlementMode `json:"mode"`
	Active        bool                  `json:"active"`
	BotEnabled    bool                  `json:"bot_enabled"`
	ExpiresAt     *time.Time            `json:"expires_at,omitempty"`
	ActivatedAt   *time.Time            `json:"activated_at,omitempty"`
	RemainingDays int                   `json:"remaining_days"`
	OwnerName     string                `json:"owner_name,omitempty"`
	ActivationRef string                `json:"activation_ref,omitempty"`
}
