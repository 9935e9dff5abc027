package transport

import (
	"context"

	"github.com/groupwarden/groupwarden/internal/types"
)

// ChatTransport is the boundary to the chat platform. The core only needs
// two capabilities: an admin lookup and a message sink.
type ChatTransport interface {
	// IsRecognizedAdmin reports whether the actor is a group administrator
	// of the tenant. When the participant list cannot be obtained the
	// result is AdminStatusUnknown, never a coerced boolean; the permission
	// resolver owns the policy for Unknown.
	IsRecognizedAdmin(ctx context.Context, tenantID, actorID string) (types.AdminStatus, error)

	// SendMessage pushes a text message to the tenant's group chat.
	SendMessage(ctx context.Context, tenantID, text string) error
}
