package service

import (
	"testing"
	"time"

	"github.com/groupwarden/groupwarden/internal/api/dto"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/testutil"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type EntitlementServiceSuite struct {
	testutil.BaseServiceTestSuite
	service EntitlementService
}

func TestEntitlementService(t *testing.T) {
	suite.Run(t, new(EntitlementServiceSuite))
}

func (s *EntitlementServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewEntitlementService(s.params())
}

func (s *EntitlementServiceSuite) params() ServiceParams {
	return ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		Clock:      s.GetClock(),
		TenantRepo: s.GetStores().Tenant,
		Transport:  s.GetTransport(),
		Rotation:   s.GetRotation(),
		Bus:        s.GetBus(),
	}
}

func (s *EntitlementServiceSuite) TestFreshTenantIsPermanentAndActive() {
	resp, err := s.service.Status(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal(types.EntitlementModePermanent, resp.Mode)
	s.True(resp.Active)
	s.True(resp.BotEnabled)
	s.Nil(resp.ExpiresAt)

	s.True(s.service.IsActive(s.GetContext(), "group-1"))
}

func (s *EntitlementServiceSuite) TestActivateWithDuration() {
	resp, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(30),
	})
	s.NoError(err)
	s.Equal(types.EntitlementModeTimeBoxed, resp.Mode)
	s.True(resp.Active)
	s.Equal(30, resp.RemainingDays)
	s.Equal(s.GetClock().Now().AddDate(0, 0, 30), *resp.ExpiresAt)
}

func (s *EntitlementServiceSuite) TestActivateWithCalendarDateIsInclusive() {
	resp, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:      types.EntitlementModeTimeBoxed,
		ExpiresOn: "2025-03-15",
	})
	s.NoError(err)
	s.True(resp.Active)

	// The grant covers the whole expiry day in the rotation offset.
	local := resp.ExpiresAt.In(s.GetRotation().Location())
	s.Equal(15, local.Day())
	s.Equal(23, local.Hour())
	s.Equal(59, local.Minute())
}

func (s *EntitlementServiceSuite) TestActivateRejectsPastDate() {
	_, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:      types.EntitlementModeTimeBoxed,
		ExpiresOn: "2025-01-01",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// The failed activation must not touch the record.
	resp, err := s.service.Status(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal(types.EntitlementModePermanent, resp.Mode)
}

func (s *EntitlementServiceSuite) TestActivateRejectsMalformedDate() {
	_, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:      types.EntitlementModeTimeBoxed,
		ExpiresOn: "15-03-2025",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *EntitlementServiceSuite) TestActivateRequiresExpiryForTimeBoxed() {
	_, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode: types.EntitlementModeTimeBoxed,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *EntitlementServiceSuite) TestTimeBoxedExpires() {
	_, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(30),
	})
	s.NoError(err)

	s.GetClock().Advance(29 * 24 * time.Hour)
	s.True(s.service.IsActive(s.GetContext(), "group-1"))

	s.GetClock().Advance(2 * 24 * time.Hour)
	s.False(s.service.IsActive(s.GetContext(), "group-1"))

	resp, err := s.service.Status(s.GetContext(), "group-1")
	s.NoError(err)
	s.False(resp.Active)
	s.True(resp.BotEnabled)
}

func (s *EntitlementServiceSuite) TestExtendAddsToCurrentExpiry() {
	_, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(10),
	})
	s.NoError(err)
	firstExpiry := s.GetClock().Now().AddDate(0, 0, 10)

	resp, err := s.service.Extend(s.GetContext(), "group-1", &dto.ExtendEntitlementRequest{
		AdditionalDays: 15,
	})
	s.NoError(err)
	s.Equal(firstExpiry.AddDate(0, 0, 15), *resp.ExpiresAt)
	s.Equal(25, resp.RemainingDays)
}

func (s *EntitlementServiceSuite) TestExtendAfterLapseStartsFromNow() {
	_, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(10),
	})
	s.NoError(err)

	// Lapse well past the expiry; the extension must not be eaten by the gap.
	s.GetClock().Advance(40 * 24 * time.Hour)

	resp, err := s.service.Extend(s.GetContext(), "group-1", &dto.ExtendEntitlementRequest{
		AdditionalDays: 7,
	})
	s.NoError(err)
	s.Equal(s.GetClock().Now().AddDate(0, 0, 7), *resp.ExpiresAt)
	s.True(resp.Active)
}

func (s *EntitlementServiceSuite) TestExtendRequiresTimeBoxedEntitlement() {
	_, err := s.GetStores().Tenant.GetOrCreate(s.GetContext(), "group-1")
	s.NoError(err)

	_, err = s.service.Extend(s.GetContext(), "group-1", &dto.ExtendEntitlementRequest{
		AdditionalDays: 7,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// The record stays untouched.
	resp, err := s.service.Status(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal(types.EntitlementModePermanent, resp.Mode)
	s.Nil(resp.ExpiresAt)
}

func (s *EntitlementServiceSuite) TestExtendUnknownTenant() {
	_, err := s.service.Extend(s.GetContext(), "ghost", &dto.ExtendEntitlementRequest{
		AdditionalDays: 7,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *EntitlementServiceSuite) TestDeactivateReturnsToPermanent() {
	_, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(30),
	})
	s.NoError(err)

	s.NoError(s.service.Deactivate(s.GetContext(), "group-1"))

	resp, err := s.service.Status(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal(types.EntitlementModePermanent, resp.Mode)
	s.Nil(resp.ExpiresAt)
	s.True(resp.Active)
}

func (s *EntitlementServiceSuite) TestListExpired() {
	_, err := s.service.Activate(s.GetContext(), "lapsed", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(5),
	})
	s.NoError(err)
	_, err = s.service.Activate(s.GetContext(), "current", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(60),
	})
	s.NoError(err)
	_, err = s.GetStores().Tenant.GetOrCreate(s.GetContext(), "forever")
	s.NoError(err)

	s.GetClock().Advance(10 * 24 * time.Hour)

	expired, err := s.service.ListExpired(s.GetContext())
	s.NoError(err)
	s.Len(expired, 1)
	s.Equal("lapsed", expired[0].TenantID)
}

func (s *EntitlementServiceSuite) TestActivateRecordsOwnerContact() {
	resp, err := s.service.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(30),
		Owner: &dto.OwnerContactRequest{
			Name:        "Rafi",
			PhoneNumber: "+62 812-3456-7890",
		},
		ActivationRef: "pay_123",
	})
	s.NoError(err)
	s.Equal("Rafi", resp.OwnerName)
	s.Equal("pay_123", resp.ActivationRef)

	stored, err := s.GetStores().Tenant.Get(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal("6281234567890", stored.Entitlement.OwnerContact.PhoneNumber)
}
