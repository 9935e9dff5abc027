package tenant

import (
	"testing"
	"time"

	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	settings := DefaultSettings("group-1", now)

	assert.Equal(t, "group-1", settings.TenantID)
	assert.True(t, settings.BotEnabled)
	assert.Equal(t, types.EntitlementModePermanent, settings.Entitlement.Mode)
	assert.Equal(t, types.RaidNotificationAll, settings.RaidNotificationPolicy)
	assert.True(t, settings.DailyResetNotification)
	assert.False(t, settings.AntiSpam.Enabled)
	assert.NoError(t, settings.Validate())

	// Materialization is deterministic: same inputs, same record.
	assert.Equal(t, settings, DefaultSettings("group-1", now))

	// The permission map is a private copy.
	settings.CommandPermissions[types.CommandRotation] = types.AccessLevelAdminOnly
	assert.Equal(t, types.AccessLevelAll, DefaultSettings("group-1", now).CommandPermissions[types.CommandRotation])
}

func TestSettingsActiveAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	permanent := DefaultSettings("group-1", now)
	assert.True(t, permanent.ActiveAt(now))

	disabled := DefaultSettings("group-1", now)
	disabled.BotEnabled = false
	assert.False(t, disabled.ActiveAt(now))

	future := now.Add(48 * time.Hour)
	boxed := DefaultSettings("group-1", now)
	boxed.Entitlement = Entitlement{Mode: types.EntitlementModeTimeBoxed, ExpiresAt: &future}
	assert.True(t, boxed.ActiveAt(now))
	assert.False(t, boxed.ActiveAt(future))
	assert.False(t, boxed.ActiveAt(future.Add(time.Second)))

	// A time-boxed grant without an expiry reads as expired, not open-ended.
	malformed := Entitlement{Mode: types.EntitlementModeTimeBoxed}
	assert.False(t, malformed.ActiveAt(now))
}

func TestRemainingDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	exact := now.AddDate(0, 0, 30)
	e := Entitlement{Mode: types.EntitlementModeTimeBoxed, ExpiresAt: &exact}
	assert.Equal(t, 30, e.RemainingDays(now))

	// Partial days round up.
	partial := now.Add(25 * time.Hour)
	e.ExpiresAt = &partial
	assert.Equal(t, 2, e.RemainingDays(now))

	under := now.Add(time.Hour)
	e.ExpiresAt = &under
	assert.Equal(t, 1, e.RemainingDays(now))

	past := now.Add(-time.Hour)
	e.ExpiresAt = &past
	assert.Equal(t, 0, e.RemainingDays(now))

	e.ExpiresAt = nil
	assert.Equal(t, 0, e.RemainingDays(now))
}

func TestSettingsValidate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	missingID := DefaultSettings("", now)
	err := missingID.Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	boxedNoExpiry := DefaultSettings("group-1", now)
	boxedNoExpiry.Entitlement.Mode = types.EntitlementModeTimeBoxed
	err = boxedNoExpiry.Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	badPolicy := DefaultSettings("group-1", now)
	badPolicy.RaidNotificationPolicy = types.RaidNotificationPolicy("loud")
	assert.Error(t, badPolicy.Validate())

	badLevel := DefaultSettings("group-1", now)
	badLevel.CommandPermissions[types.CommandRotation] = types.AccessLevel("vip")
	assert.Error(t, badLevel.Validate())
}
