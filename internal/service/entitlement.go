package service

import (
	"context"
	"time"

	"github.com/groupwarden/groupwarden/internal/api/dto"
	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/types"
)

// EntitlementService owns the entitlement state machine: whether a tenant's
// bot access is permanent, time-boxed or administratively disabled, and the
// activate/extend/deactivate transitions.
type EntitlementService interface {
	// Activate grants an entitlement. Time-boxed grants require a valid
	// future-or-present expiry; calendar dates are made inclusive of the
	// whole day.
	Activate(ctx context.Context, tenantID string, req *dto.ActivateEntitlementRequest) (*dto.EntitlementStatusResponse, error)

	// Extend adds days to an existing time-boxed entitlement, from the
	// later of now and the current expiry. Extending a tenant without a
	// time-boxed entitlement is a typed failure, never an implicit
	// activation.
	Extend(ctx context.Context, tenantID string, req *dto.ExtendEntitlementRequest) (*dto.EntitlementStatusResponse, error)

	// Deactivate clears the time-boxed entitlement, returning the tenant
	// to the default permanent mode. Distinct from disabling the bot.
	Deactivate(ctx context.Context, tenantID string) error

	// Status reports the current entitlement state.
	Status(ctx context.Context, tenantID string) (*dto.EntitlementStatusResponse, error)

	// IsActive reports whether the tenant is operationally active. It
	// never fails: missing or malformed records read as inactive, the
	// safe default for a paid-feature gate.
	IsActive(ctx context.Context, tenantID string) bool

	// ListExpired returns every tenant whose time-boxed entitlement has
	// lapsed. Used by the renewal-reminder sweep.
	ListExpired(ctx context.Context) ([]*tenant.Settings, error)
}

type entitlementService struct {
	ServiceParams
}

// NewEntitlementService creates the entitlement service.
func NewEntitlementService(params ServiceParams) EntitlementService {
	return &entitlementService{ServiceParams: params}
}

func (s *entitlementService) Activate(ctx context.Context, tenantID string, req *dto.ActivateEntitlementRequest) (*dto.EntitlementStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()

	entitlement := tenant.Entitlement{
		Mode:          req.Mode,
		ActivationRef: req.ActivationRef,
		Price:         req.Price,
		DurationDays:  req.DurationDays,
	}
	activatedAt := now.UTC()
	entitlement.ActivatedAt = &activatedAt

	if req.Owner != nil {
		entitlement.OwnerContact = &tenant.OwnerContact{
			Name:        req.Owner.Name,
			PhoneNumber: types.NormalizePhoneNumber(req.Owner.PhoneNumber),
			ContactID:   req.Owner.ContactID,
		}
	}

	if req.Mode == types.EntitlementModeTimeBoxed {
		expiresAt, err := s.resolveExpiry(req, now)
		if err != nil {
			return nil, err
		}
		entitlement.ExpiresAt = &expiresAt
	}

	settings.Entitlement = entitlement
	if err := s.TenantRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.Logger.Infow("entitlement activated",
		"tenant_id", tenantID,
		"mode", req.Mode,
		"expires_at", entitlement.ExpiresAt,
		"activation_ref", req.ActivationRef)

	return s.statusOf(settings, now), nil
}

// resolveExpiry turns the request's expiry date or duration into an instant,
// normalized to end-of-day so "expires on day D" includes all of D.
func (s *entitlementService) resolveExpiry(req *dto.ActivateEntitlementRequest, now time.Time) (time.Time, error) {
	if req.ExpiresOn != "" {
		day, err := s.Rotation.ParseDate(req.ExpiresOn)
		if err != nil {
			return time.Time{}, err
		}
		expiresAt := s.Rotation.EndOfDay(day)
		if expiresAt.Before(now) {
			return time.Time{}, ierr.NewErrorf("expiry date %s is in the past", req.ExpiresOn).
				WithHint("Expiry must be today or a future date").
				Mark(ierr.ErrValidation)
		}
		return expiresAt, nil
	}
	// Duration-based grants are exact: end-of-day normalization only
	// applies to calendar-date expiries.
	return now.AddDate(0, 0, *req.DurationDays), nil
}

func (s *entitlementService) Extend(ctx context.Context, tenantID string, req *dto.ExtendEntitlementRequest) (*dto.EntitlementStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.TenantRepo.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !settings.Entitlement.IsTimeBoxed() {
		return nil, ierr.NewErrorf("tenant %s has no time-boxed entitlement to extend", tenantID).
			WithHint("Activate a time-boxed entitlement before extending it").
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Clock.Now()

	// Extension never shortens remaining time and never backdates: it adds
	// to the later of now and the current expiry.
	base := *settings.Entitlement.ExpiresAt
	if now.After(base) {
		base = now
	}
	newExpiry := base.AddDate(0, 0, req.AdditionalDays)
	settings.Entitlement.ExpiresAt = &newExpiry
	settings.Entitlement.DurationDays = &req.AdditionalDays
	if req.ActivationRef != "" {
		settings.Entitlement.ActivationRef = req.ActivationRef
	}
	if req.Price != nil {
		settings.Entitlement.Price = req.Price
	}
	if req.Owner != nil {
		settings.Entitlement.OwnerContact = &tenant.OwnerContact{
			Name:        req.Owner.Name,
			PhoneNumber: types.NormalizePhoneNumber(req.Owner.PhoneNumber),
			ContactID:   req.Owner.ContactID,
		}
	}

	if err := s.TenantRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.Logger.Infow("entitlement extended",
		"tenant_id", tenantID,
		"additional_days", req.AdditionalDays,
		"expires_at", newExpiry)

	return s.statusOf(settings, now), nil
}

func (s *entitlementService) Deactivate(ctx context.Context, tenantID string) error {
	settings, err := s.TenantRepo.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	settings.Entitlement = tenant.Entitlement{Mode: types.EntitlementModePermanent}
	if err := s.TenantRepo.Update(ctx, settings); err != nil {
		return err
	}

	s.Logger.Infow("entitlement deactivated", "tenant_id", tenantID)
	return nil
}

func (s *entitlementService) Status(ctx context.Context, tenantID string) (*dto.EntitlementStatusResponse, error) {
	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.statusOf(settings, s.Clock.Now()), nil
}

func (s *entitlementService) IsActive(ctx context.Context, tenantID string) bool {
	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		s.Logger.Warnw("entitlement check degraded to inactive", "tenant_id", tenantID, "error", err)
		return false
	}
	return settings.ActiveAt(s.Clock.Now())
}

func (s *entitlementService) ListExpired(ctx context.Context) ([]*tenant.Settings, error) {
	all, err := s.TenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	expired := make([]*tenant.Settings, 0)
	for _, settings := range all {
		e := settings.Entitlement
		if e.Mode == types.EntitlementModeTimeBoxed && e.ExpiresAt != nil && !now.Before(*e.ExpiresAt) {
			expired = append(expired, settings)
		}
	}
	return expired, nil
}

func (s *entitlementService) statusOf(settings *tenant.Settings, now time.Time) *dto.EntitlementStatusResponse {
	resp := &dto.EntitlementStatusResponse{
		TenantID:      settings.TenantID,
		Mode:          settings.Entitlement.Mode,
		Active:        settings.ActiveAt(now),
		BotEnabled:    settings.BotEnabled,
		ExpiresAt:     settings.Entitlement.ExpiresAt,
		ActivatedAt:   settings.Entitlement.ActivatedAt,
		ActivationRef: settings.Entitlement.ActivationRef,
	}
	if settings.Entitlement.IsTimeBoxed() {
		resp.RemainingDays = settings.Entitlement.RemainingDays(now)
	}
	if settings.Entitlement.OwnerContact != nil {
		resp.OwnerName = settings.Entitlement.OwnerContact.Name
	}
	return resp
}
