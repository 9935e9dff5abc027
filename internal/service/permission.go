package service

import (
	"context"

	"github.com/groupwarden/groupwarden/internal/types"
)

// Decision is the outcome of permission resolution. A deny is a normal
// decision the caller branches on, not an error.
type Decision struct {
	Allowed bool
	Reason  types.DenyReason
}

var allow = Decision{Allowed: true}

func deny(reason types.DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// PermissionService decides whether an actor may run a command in a tenant.
type PermissionService interface {
	// Resolve applies the precedence chain: global owner bypass →
	// owner-only command deny → per-tenant admin-only policy → allow.
	// The owner bypass is unconditional and precedes every other check,
	// including the bot-disabled state: management commands must stay
	// reachable on a disabled tenant or it could never be re-enabled.
	//
	// Resolve is read-only and never fails; store or transport trouble
	// degrades to a deny.
	Resolve(ctx context.Context, tenantID string, actor types.Actor, command types.Command) Decision

	// CheckCommand combines Resolve with the entitlement gate, so callers
	// get one verdict whose reason distinguishes "you lack permission"
	// from "this tenant's access has expired or is disabled".
	CheckCommand(ctx context.Context, tenantID string, actor types.Actor, command types.Command) Decision

	// IsOwner reports whether the actor is the configured global operator.
	IsOwner(actor types.Actor) bool
}

type permissionService struct {
	ServiceParams
}

// NewPermissionService creates the permission resolver. The authority
// configuration is taken from params.Config at construction; no call site
// reads it ambiently.
func NewPermissionService(params ServiceParams) PermissionService {
	return &permissionService{ServiceParams: params}
}

func (s *permissionService) IsOwner(actor types.Actor) bool {
	return types.SamePhoneNumber(actor.PhoneNumber, s.Config.Auth.OwnerNumber)
}

func (s *permissionService) Resolve(ctx context.Context, tenantID string, actor types.Actor, command types.Command) Decision {
	// 1. Owner bypass, before anything else.
	if s.IsOwner(actor) {
		return allow
	}

	// 2. Owner-only commands are closed to everyone else.
	if types.IsOwnerOnly(command) {
		return deny(types.DenyReasonOwnerOnly)
	}

	// 3. Per-tenant policy.
	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		s.Logger.Warnw("permission resolution degraded to deny",
			"tenant_id", tenantID, "command", command, "error", err)
		return deny(types.DenyReasonAdminOnly)
	}

	level, known := settings.CommandPermissions[command]
	if !known {
		level = types.AccessLevelAll
	}
	if level == types.AccessLevelAdminOnly && !s.actorIsAdmin(ctx, tenantID, actor) {
		return deny(types.DenyReasonAdminOnly)
	}

	// 4. Default allow.
	return allow
}

func (s *permissionService) CheckCommand(ctx context.Context, tenantID string, actor types.Actor, command types.Command) Decision {
	decision := s.Resolve(ctx, tenantID, actor, command)
	if !decision.Allowed {
		return decision
	}

	// The owner operates on disabled and expired tenants.
	if s.IsOwner(actor) {
		return allow
	}

	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		s.Logger.Warnw("entitlement gate degraded to deny", "tenant_id", tenantID, "error", err)
		return deny(types.DenyReasonBotDisabled)
	}
	if !settings.BotEnabled {
		return deny(types.DenyReasonBotDisabled)
	}
	if !settings.Entitlement.ActiveAt(s.Clock.Now()) {
		return deny(types.DenyReasonExpired)
	}
	return allow
}

// actorIsAdmin resolves the tri-state transport lookup against the configured
// fallback policy for Unknown.
func (s *permissionService) actorIsAdmin(ctx context.Context, tenantID string, actor types.Actor) bool {
	actorID := actor.ContactID
	if actorID == "" {
		actorID = actor.PhoneNumber
	}

	status, err := s.Transport.IsRecognizedAdmin(ctx, tenantID, actorID)
	if err != nil {
		status = types.AdminStatusUnknown
	}

	switch status {
	case types.AdminStatusAdmin:
		return true
	case types.AdminStatusNotAdmin:
		return false
	default:
		// Admin status could not be determined. This is an explicit,
		// configured policy choice, not a silent default.
		s.Logger.Warnw("admin status unknown, applying fallback policy",
			"tenant_id", tenantID,
			"actor_id", actorID,
			"bypass", s.Config.Permission.AdminUnknownBypass)
		return s.Config.Permission.AdminUnknownBypass
	}
}
