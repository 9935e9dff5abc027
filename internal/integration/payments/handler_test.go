package payments

import (
	"testing"
	"time"

	"github.com/groupwarden/groupwarden/internal/api/dto"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/service"
	"github.com/groupwarden/groupwarden/internal/testutil"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentHandlerSuite struct {
	testutil.BaseServiceTestSuite
	handler      *Handler
	entitlements service.EntitlementService
}

func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerSuite))
}

func (s *PaymentHandlerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.entitlements = service.NewEntitlementService(service.ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		Clock:      s.GetClock(),
		TenantRepo: s.GetStores().Tenant,
		Transport:  s.GetTransport(),
		Rotation:   s.GetRotation(),
		Bus:        s.GetBus(),
	})
	s.handler = NewHandler(s.entitlements, s.GetLogger())
}

func (s *PaymentHandlerSuite) completedEvent(tenantID string, days int) *WebhookEvent {
	return &WebhookEvent{
		ID:        "evt_1",
		Type:      EventPaymentCompleted,
		CreatedAt: s.GetClock().Now(),
		Data: PaymentData{
			TenantID:     tenantID,
			Amount:       decimal.NewFromInt(50000),
			DurationDays: days,
			Reference:    "pay_abc",
			Payer: Payer{
				Name:        "Sari",
				PhoneNumber: "628555666777",
				ContactID:   "contact-9",
			},
		},
	}
}

func (s *PaymentHandlerSuite) TestCompletedPaymentExtendsExistingGrant() {
	_, err := s.entitlements.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(10),
	})
	s.NoError(err)
	firstExpiry := s.GetClock().Now().AddDate(0, 0, 10)

	s.NoError(s.handler.HandleEvent(s.GetContext(), s.completedEvent("group-1", 30)))

	stored, err := s.GetStores().Tenant.Get(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal(firstExpiry.AddDate(0, 0, 30), *stored.Entitlement.ExpiresAt)
	s.Equal("pay_abc", stored.Entitlement.ActivationRef)
	s.Equal("Sari", stored.Entitlement.OwnerContact.Name)
}

func (s *PaymentHandlerSuite) TestCompletedPaymentActivatesWhenNothingToExtend() {
	// Tenant exists with the default permanent entitlement.
	_, err := s.GetStores().Tenant.GetOrCreate(s.GetContext(), "group-1")
	s.NoError(err)

	s.NoError(s.handler.HandleEvent(s.GetContext(), s.completedEvent("group-1", 30)))

	stored, err := s.GetStores().Tenant.Get(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal(types.EntitlementModeTimeBoxed, stored.Entitlement.Mode)
	s.Equal(s.GetClock().Now().AddDate(0, 0, 30), *stored.Entitlement.ExpiresAt)
}

func (s *PaymentHandlerSuite) TestCompletedPaymentForUnseenTenantActivates() {
	s.NoError(s.handler.HandleEvent(s.GetContext(), s.completedEvent("brand-new", 14)))

	stored, err := s.GetStores().Tenant.Get(s.GetContext(), "brand-new")
	s.NoError(err)
	s.Equal(types.EntitlementModeTimeBoxed, stored.Entitlement.Mode)
	s.Equal(14, *stored.Entitlement.DurationDays)
}

func (s *PaymentHandlerSuite) TestNonCompletionEventIsIgnored() {
	event := s.completedEvent("group-1", 30)
	event.Type = "payment.pending"

	s.NoError(s.handler.HandleEvent(s.GetContext(), event))

	_, err := s.GetStores().Tenant.Get(s.GetContext(), "group-1")
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentHandlerSuite) TestRejectsMalformedEvents() {
	missingTenant := s.completedEvent("", 30)
	err := s.handler.HandleEvent(s.GetContext(), missingTenant)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	zeroDuration := s.completedEvent("group-1", 0)
	err = s.handler.HandleEvent(s.GetContext(), zeroDuration)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentHandlerSuite) TestExpiredGrantExtendsFromNow() {
	_, err := s.entitlements.Activate(s.GetContext(), "group-1", &dto.ActivateEntitlementRequest{
		Mode:         types.EntitlementModeTimeBoxed,
		DurationDays: lo.ToPtr(5),
	})
	s.NoError(err)
	s.GetClock().Advance(20 * 24 * time.Hour)

	s.NoError(s.handler.HandleEvent(s.GetContext(), s.completedEvent("group-1", 30)))

	stored, err := s.GetStores().Tenant.Get(s.GetContext(), "group-1")
	s.NoError(err)
	s.Equal(s.GetClock().Now().AddDate(0, 0, 30), *stored.Entitlement.ExpiresAt)
}
