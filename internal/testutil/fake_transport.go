package testutil

import (
	"context"
	"sync"

	"github.com/groupwarden/groupwarden/internal/types"
)

// SentMessage records one SendMessage call.
type SentMessage struct {
	TenantID string
	Text     string
}

// FakeTransport is a scriptable chat transport. Admin answers are keyed by
// actor id; unscripted actors resolve to AdminStatusUnknown, matching the
// real gateway's behavior when the participant list is unavailable.
type FakeTransport struct {
	mu         sync.Mutex
	adminState map[string]types.AdminStatus
	sent       []SentMessage
	sendErr    error
}

// NewFakeTransport creates an empty fake transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{adminState: make(map[string]types.AdminStatus)}
}

// SetAdminStatus scripts the admin answer for an actor.
func (t *FakeTransport) SetAdminStatus(actorID string, status types.AdminStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.adminState[actorID] = status
}

// FailSends makes every subsequent SendMessage return err.
func (t *FakeTransport) FailSends(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sendErr = err
}

func (t *FakeTransport) IsRecognizedAdmin(ctx context.Context, tenantID, actorID string) (types.AdminStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if status, ok := t.adminState[actorID]; ok {
		return status, nil
	}
	return types.AdminStatusUnknown, nil
}

func (t *FakeTransport) SendMessage(ctx context.Context, tenantID, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, SentMessage{TenantID: tenantID, Text: text})
	return nil
}

// Sent returns a copy of every recorded message.
func (t *FakeTransport) Sent() []SentMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]SentMessage{}, t.sent...)
}
