package types

import (
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/samber/lo"
)

// AntiSpamAction is what the bot does when a message trips the link filter.
type AntiSpamAction string

const (
	AntiSpamActionDelete AntiSpamAction = "delete"
	AntiSpamActionWarn   AntiSpamAction = "warn"
)

func (a AntiSpamAction) Validate() error {
	allowed := []AntiSpamAction{AntiSpamActionDelete, AntiSpamActionWarn}
	if !lo.Contains(allowed, a) {
		return ierr.NewErrorf("invalid anti-spam action: %s", a).
			WithHint("Action must be 'delete' or 'warn'").
			Mark(ierr.ErrValidation)
	}
	return nil
}
