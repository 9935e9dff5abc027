package types

import (
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/samber/lo"
)

// EntitlementMode describes how a tenant's bot access is granted.
type EntitlementMode string

const (
	// EntitlementModePermanent grants access with no expiry. This is the
	// default for freshly created tenants.
	EntitlementModePermanent EntitlementMode = "permanent"

	// EntitlementModeTimeBoxed grants access until a fixed expiry instant.
	EntitlementModeTimeBoxed EntitlementMode = "time_boxed"
)

func (m EntitlementMode) Validate() error {
	allowed := []EntitlementMode{
		EntitlementModePermanent,
		EntitlementModeTimeBoxed,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewErrorf("invalid entitlement mode: %s", m).
			WithHint("Please provide a valid entitlement mode").
			WithReportableDetails(map[string]interface{}{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (m EntitlementMode) String() string {
	return string(m)
}
