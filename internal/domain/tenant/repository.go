package tenant

import "context"

// Repository defines persistence for tenant settings records.
//
// The store provides per-call atomicity only: Update writes the whole record
// and concurrent writers to the same tenant interleave last-write-wins. This
// weak model is deliberate for human-timescale command rates and is not to be
// relied on for correctness-critical flows.
type Repository interface {
	// GetOrCreate returns the tenant's settings, materializing and
	// persisting the defaults on first access. Repeated calls for a fresh
	// tenant return identical records.
	GetOrCreate(ctx context.Context, tenantID string) (*Settings, error)

	// Get returns the tenant's settings or a not-found error.
	Get(ctx context.Context, tenantID string) (*Settings, error)

	// Update persists the whole record. Last write wins.
	Update(ctx context.Context, settings *Settings) error

	// List returns the settings of every known tenant.
	List(ctx context.Context) ([]*Settings, error)
}
