package types

// AdminStatus is the tri-state outcome of a group-admin lookup against the
// chat transport. The transport must never collapse Unknown into a boolean;
// the permission resolver decides how Unknown is handled.
type AdminStatus string

const (
	AdminStatusAdmin    AdminStatus = "admin"
	AdminStatusNotAdmin AdminStatus = "not_admin"
	AdminStatusUnknown  AdminStatus = "unknown"
)

// DenyReason explains why a command was denied, so user-facing messaging can
// distinguish "ask an admin" from "renew your access".
type DenyReason string

const (
	DenyReasonNone        DenyReason = ""
	DenyReasonOwnerOnly   DenyReason = "owner_only"
	DenyReasonAdminOnly   DenyReason = "admin_only"
	DenyReasonBotDisabled DenyReason = "bot_disabled"
	DenyReasonExpired     DenyReason = "entitlement_expired"
)
