package dto

import (
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/groupwarden/groupwarden/internal/validator"
)

// ResolvePermissionRequest asks whether an actor may run a command in a
// tenant.
type ResolvePermissionRequest struct {
	TenantID string        `json:"tenant_id" validate:"required"`
	Actor    types.Actor   `json:"actor" validate:"required"`
	Command  types.Command `json:"command" validate:"required"`
}

func (r *ResolvePermissionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Command.Validate()
}

// PermissionDecisionResponse is the resolver's verdict.
type PermissionDecisionResponse struct {
	Allowed bool             `json:"allowed"`
	Reason  types.DenyReason `json:"reason,omitempty"`
}
