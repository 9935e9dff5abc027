package dto

import (
	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/types"
)

// UpdateSettingsRequest partially updates a tenant's settings. Only set
// fields are applied.
type UpdateSettingsRequest struct {
	BotEnabled             *bool                         `json:"bot_enabled,omitempty"`
	RaidNotificationPolicy *types.RaidNotificationPolicy `json:"raid_notification_policy,omitempty"`
	DailyResetNotification *bool                         `json:"daily_reset_notification,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	if r.BotEnabled == nil && r.RaidNotificationPolicy == nil && r.DailyResetNotification == nil {
		return ierr.NewError("no settings fields provided").
			WithHint("Provide at least one field to update").
			Mark(ierr.ErrValidation)
	}
	if r.RaidNotificationPolicy != nil {
		if err := r.RaidNotificationPolicy.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SetCommandPermissionRequest changes the access level of one group command.
type SetCommandPermissionRequest struct {
	Command     types.Command     `json:"command" validate:"required"`
	AccessLevel types.AccessLevel `json:"access_level" validate:"required"`
}

func (r *SetCommandPermissionRequest) Validate() error {
	if err := r.Command.Validate(); err != nil {
		return err
	}
	if types.IsOwnerOnly(r.Command) {
		return ierr.NewErrorf("command %s is owner-only and has no per-tenant policy", r.Command).
			WithHint("Owner-only commands cannot be reassigned").
			Mark(ierr.ErrValidation)
	}
	return r.AccessLevel.Validate()
}

// UpdateAntiSpamRequest replaces a tenant's anti-spam policy.
type UpdateAntiSpamRequest struct {
	Enabled         bool                 `json:"enabled"`
	BlockDisallowed bool                 `json:"block_disallowed"`
	Action          types.AntiSpamAction `json:"action"`
	AllowedDomains  []string             `json:"allowed_domains"`
}

func (r *UpdateAntiSpamRequest) Validate() error {
	if r.Enabled {
		return r.Action.Validate()
	}
	return nil
}

// SettingsResponse is the full tenant settings view.
type SettingsResponse struct {
	*tenant.Settings
}

// NewSettingsResponse wraps a settings record for the API layer.
func NewSettingsResponse(s *tenant.Settings) *SettingsResponse {
	return &SettingsResponse{Settings: s}
}
