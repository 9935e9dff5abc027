package types

import (
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/samber/lo"
)

// RaidNotificationPolicy controls the recurring raid-rotation notification
// stream for a tenant.
type RaidNotificationPolicy string

const (
	// RaidNotificationAll notifies on every rotation day. Default.
	RaidNotificationAll RaidNotificationPolicy = "all"

	// RaidNotificationFiltered notifies only on days whose raid category is
	// in the privileged allowlist (legendary or mythic).
	RaidNotificationFiltered RaidNotificationPolicy = "filtered"

	// RaidNotificationOff suppresses the stream entirely.
	RaidNotificationOff RaidNotificationPolicy = "off"
)

// RaidCategory classifies a rotation slot's raid tier.
type RaidCategory string

const (
	RaidCategoryStandard  RaidCategory = "standard"
	RaidCategoryRare      RaidCategory = "rare"
	RaidCategoryLegendary RaidCategory = "legendary"
	RaidCategoryMythic    RaidCategory = "mythic"
)

// privilegedRaidCategories is the fixed allowlist used by the filtered
// notification policy.
var privilegedRaidCategories = []RaidCategory{
	RaidCategoryLegendary,
	RaidCategoryMythic,
}

// IsPrivilegedRaidCategory reports whether the category passes the filtered
// notification policy.
func IsPrivilegedRaidCategory(c RaidCategory) bool {
	return lo.Contains(privilegedRaidCategories, c)
}

func (p RaidNotificationPolicy) Validate() error {
	allowed := []RaidNotificationPolicy{
		RaidNotificationAll,
		RaidNotificationFiltered,
		RaidNotificationOff,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewErrorf("invalid raid notification policy: %s", p).
			WithHint("Policy must be 'all', 'filtered' or 'off'").
			Mark(ierr.ErrValidation)
	}
	return nil
}
