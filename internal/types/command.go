package types

import (
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/samber/lo"
)

// Command identifies a bot command as typed by a group member.
type Command string

const (
	// group commands, subject to per-tenant access policy
	CommandRotation  Command = "rotation"
	CommandReset     Command = "reset"
	CommandCountdown Command = "countdown"
	CommandStatus    Command = "status"
	CommandHelp      Command = "help"
	CommandSettings  Command = "settings"
	CommandNotify    Command = "notify"
	CommandAntiSpam  Command = "antispam"

	// owner-only management commands, never available to group members
	CommandActivate   Command = "activate"
	CommandExtend     Command = "extend"
	CommandDeactivate Command = "deactivate"
	CommandEnable     Command = "enable"
	CommandDisable    Command = "disable"
	CommandBroadcast  Command = "broadcast"
	CommandPaymentLog Command = "paymentlog"
)

// AccessLevel controls who may run a group command within a tenant.
type AccessLevel string

const (
	AccessLevelAll       AccessLevel = "all"
	AccessLevelAdminOnly AccessLevel = "admin_only"
)

// ownerOnlyCommands is the fixed set of commands reserved for the global
// operator. Per-tenant policy never applies to these.
var ownerOnlyCommands = []Command{
	CommandActivate,
	CommandExtend,
	CommandDeactivate,
	CommandEnable,
	CommandDisable,
	CommandBroadcast,
	CommandPaymentLog,
}

// defaultCommandPermissions holds the out-of-the-box access policy for group
// commands. Management-flavored commands default to admins.
var defaultCommandPermissions = map[Command]AccessLevel{
	CommandRotation:  AccessLevelAll,
	CommandReset:     AccessLevelAll,
	CommandCountdown: AccessLevelAll,
	CommandStatus:    AccessLevelAll,
	CommandHelp:      AccessLevelAll,
	CommandSettings:  AccessLevelAdminOnly,
	CommandNotify:    AccessLevelAdminOnly,
	CommandAntiSpam:  AccessLevelAdminOnly,
}

// KnownCommands returns every command the bot understands.
func KnownCommands() []Command {
	commands := lo.Keys(defaultCommandPermissions)
	return append(commands, ownerOnlyCommands...)
}

// IsOwnerOnly reports whether the command is reserved for the global operator.
func IsOwnerOnly(c Command) bool {
	return lo.Contains(ownerOnlyCommands, c)
}

// DefaultCommandPermissions returns a fresh copy of the default policy map so
// callers can mutate their copy safely.
func DefaultCommandPermissions() map[Command]AccessLevel {
	return lo.Assign(map[Command]AccessLevel{}, defaultCommandPermissions)
}

func (c Command) Validate() error {
	if !lo.Contains(KnownCommands(), c) {
		return ierr.NewErrorf("unknown command: %s", c).
			WithHint("Please provide a known command name").
			WithReportableDetails(map[string]interface{}{
				"known": KnownCommands(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (c Command) String() string {
	return string(c)
}

func (a AccessLevel) Validate() error {
	allowed := []AccessLevel{AccessLevelAll, AccessLevelAdminOnly}
	if !lo.Contains(allowed, a) {
		return ierr.NewErrorf("invalid access level: %s", a).
			WithHint("Access level must be 'all' or 'admin_only'").
			Mark(ierr.ErrValidation)
	}
	return nil
}
