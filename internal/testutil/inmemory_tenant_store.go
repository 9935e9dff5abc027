package testutil

import (
	"context"

	"github.com/groupwarden/groupwarden/internal/clock"
	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/samber/lo"
)

// InMemoryTenantStore implements tenant.Repository.
type InMemoryTenantStore struct {
	*InMemoryStore[*tenant.Settings]
	clock clock.Clock
}

// NewInMemoryTenantStore creates a new in-memory tenant settings store.
func NewInMemoryTenantStore(clock clock.Clock) *InMemoryTenantStore {
	return &InMemoryTenantStore{
		InMemoryStore: NewInMemoryStore[*tenant.Settings](),
		clock:         clock,
	}
}

// Helper to deep-copy a settings record so callers cannot mutate the stored
// one through shared pointers.
func copySettings(s *tenant.Settings) *tenant.Settings {
	if s == nil {
		return nil
	}

	copied := *s
	copied.CommandPermissions = lo.Assign(map[types.Command]types.AccessLevel{}, s.CommandPermissions)
	copied.AntiSpam.AllowedDomains = append([]string{}, s.AntiSpam.AllowedDomains...)
	copied.Entitlement = copyEntitlement(s.Entitlement)
	return &copied
}

func copyEntitlement(e tenant.Entitlement) tenant.Entitlement {
	copied := e
	if e.ExpiresAt != nil {
		t := *e.ExpiresAt
		copied.ExpiresAt = &t
	}
	if e.ActivatedAt != nil {
		t := *e.ActivatedAt
		copied.ActivatedAt = &t
	}
	if e.OwnerContact != nil {
		oc := *e.OwnerContact
		copied.OwnerContact = &oc
	}
	if e.Price != nil {
		p := *e.Price
		copied.Price = &p
	}
	if e.DurationDays != nil {
		d := *e.DurationDays
		copied.DurationDays = &d
	}
	return copied
}

func (s *InMemoryTenantStore) GetOrCreate(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	if tenantID == "" {
		return nil, ierr.NewError("tenant id cannot be empty").
			WithHint("Tenant id cannot be empty").
			Mark(ierr.ErrValidation)
	}

	defaults := tenant.DefaultSettings(tenantID, s.clock.Now())
	s.InMemoryStore.CreateIfAbsent(ctx, tenantID, copySettings(defaults))
	return s.Get(ctx, tenantID)
}

func (s *InMemoryTenantStore) Get(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	settings, err := s.InMemoryStore.Get(ctx, tenantID)
	if err != nil {
		return nil, ierr.NewError("tenant settings not found").
			WithHint("Tenant settings not found").
			WithReportableDetails(map[string]interface{}{
				"tenant_id": tenantID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copySettings(settings), nil
}

func (s *InMemoryTenantStore) Update(ctx context.Context, settings *tenant.Settings) error {
	if settings == nil {
		return ierr.NewError("settings cannot be nil").
			WithHint("Settings cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	settings.UpdatedAt = s.clock.Now()
	copied := copySettings(settings)
	if err := s.InMemoryStore.Update(ctx, settings.TenantID, copied); err != nil {
		// Whole-record upsert semantics: an update of an unseen tenant
		// materializes it.
		if err := s.InMemoryStore.Create(ctx, settings.TenantID, copied); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to update tenant settings").
				WithReportableDetails(map[string]interface{}{
					"tenant_id": settings.TenantID,
				}).
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (s *InMemoryTenantStore) List(ctx context.Context) ([]*tenant.Settings, error) {
	items := s.InMemoryStore.List(ctx)
	out := make([]*tenant.Settings, 0, len(items))
	for _, item := range items {
		out = append(out, copySettings(item))
	}
	return out, nil
}
