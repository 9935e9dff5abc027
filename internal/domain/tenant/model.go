package tenant

import (
	"time"

	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/shopspring/decimal"
)

// OwnerContact is the snapshot of who paid for a time-boxed entitlement,
// kept for audit and renewal-reminder display.
type OwnerContact struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	ContactID   string `json:"contact_id"`
}

// Entitlement is the access-grant axis of a tenant. BotEnabled on Settings is
// a separate administrative axis layered on top of it.
type Entitlement struct {
	Mode          types.EntitlementMode `json:"mode"`
	ExpiresAt     *time.Time            `json:"expires_at,omitempty"`
	ActivatedAt   *time.Time            `json:"activated_at,omitempty"`
	OwnerContact  *OwnerContact         `json:"owner_contact,omitempty"`
	Price         *decimal.Decimal      `json:"price,omitempty"`
	DurationDays  *int                  `json:"duration_days,omitempty"`
	ActivationRef string                `json:"activation_ref,omitempty"`
}

// AntiSpamPolicy configures the group link filter. It shares the settings
// record but is independent of entitlement.
type AntiSpamPolicy struct {
	Enabled         bool                 `json:"enabled"`
	BlockDisallowed bool                 `json:"block_disallowed"`
	Action          types.AntiSpamAction `json:"action"`
	AllowedDomains  []string             `json:"allowed_domains"`
}

// Settings is the per-tenant (per chat-group) record. It is created lazily
// with defaults on first access and mutated whole-record, last write wins.
type Settings struct {
	TenantID               string                              `json:"tenant_id"`
	BotEnabled             bool                                `json:"bot_enabled"`
	Entitlement            Entitlement                         `json:"entitlement"`
	CommandPermissions     map[types.Command]types.AccessLevel `json:"command_permissions"`
	RaidNotificationPolicy types.RaidNotificationPolicy        `json:"raid_notification_policy"`
	DailyResetNotification bool                                `json:"daily_reset_notification"`
	AntiSpam               AntiSpamPolicy                      `json:"anti_spam"`

	types.BaseModel
}

// DefaultSettings materializes the default record for a tenant seen for the
// first time. The same defaults must be produced on every call so repeated
// materialization cannot drift.
func DefaultSettings(tenantID string, now time.Time) *Settings {
	return &Settings{
		TenantID:   tenantID,
		BotEnabled: true,
		Entitlement: Entitlement{
			Mode: types.EntitlementModePermanent,
		},
		CommandPermissions:     types.DefaultCommandPermissions(),
		RaidNotificationPolicy: types.RaidNotificationAll,
		DailyResetNotification: true,
		AntiSpam: AntiSpamPolicy{
			Enabled:         false,
			BlockDisallowed: false,
			Action:          types.AntiSpamActionDelete,
			AllowedDomains:  []string{},
		},
		BaseModel: types.BaseModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// ActiveAt reports whether the tenant is operationally active at the given
// instant: the administrative kill switch is on AND the entitlement has not
// expired. Permanent mode never expires.
func (s *Settings) ActiveAt(now time.Time) bool {
	if s == nil || !s.BotEnabled {
		return false
	}
	return s.Entitlement.ActiveAt(now)
}

// ActiveAt reports whether the entitlement itself is valid at the given
// instant, ignoring the administrative kill switch.
func (e *Entitlement) ActiveAt(now time.Time) bool {
	if e.Mode == types.EntitlementModePermanent {
		return true
	}
	// A time-boxed entitlement with no expiry is malformed; treat it as
	// expired rather than granting open-ended access.
	if e.ExpiresAt == nil {
		return false
	}
	return now.Before(*e.ExpiresAt)
}

// IsTimeBoxed reports whether the tenant currently holds a time-boxed
// entitlement with a known expiry.
func (e *Entitlement) IsTimeBoxed() bool {
	return e.Mode == types.EntitlementModeTimeBoxed && e.ExpiresAt != nil
}

// RemainingDays returns ceil(expiresAt - now) in days. Zero or negative
// means expired. Only meaningful for time-boxed entitlements.
func (e *Entitlement) RemainingDays(now time.Time) int {
	if e.ExpiresAt == nil {
		return 0
	}
	remaining := e.ExpiresAt.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Validate checks the structural invariants of a settings record.
func (s *Settings) Validate() error {
	if s.TenantID == "" {
		return ierr.NewError("tenant id is required").
			WithHint("Tenant id is required").
			Mark(ierr.ErrValidation)
	}
	if err := s.Entitlement.Mode.Validate(); err != nil {
		return err
	}
	if s.Entitlement.Mode == types.EntitlementModeTimeBoxed && s.Entitlement.ExpiresAt == nil {
		return ierr.NewError("time-boxed entitlement requires an expiry").
			WithHint("A time-boxed entitlement must carry an expiry timestamp").
			Mark(ierr.ErrValidation)
	}
	if err := s.RaidNotificationPolicy.Validate(); err != nil {
		return err
	}
	for command, level := range s.CommandPermissions {
		if err := command.Validate(); err != nil {
			return err
		}
		if err := level.Validate(); err != nil {
			return err
		}
	}
	if s.AntiSpam.Enabled {
		if err := s.AntiSpam.Action.Validate(); err != nil {
			return err
		}
	}
	return nil
}
