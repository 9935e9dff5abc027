package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/groupwarden/groupwarden/internal/api/dto"
	"github.com/groupwarden/groupwarden/internal/domain/rotation"
	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	"github.com/groupwarden/groupwarden/internal/sender"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// dispatchWorkers bounds the per-tenant fan-out concurrency.
const dispatchWorkers = 8

// NotificationService decides which tenants receive which notifications and
// runs the cron-driven sweeps. The gate methods are pure reads.
type NotificationService interface {
	// ShouldNotifyRaid applies the tenant's raid notification policy to a
	// raid category, conjoined with operational activity: an expired or
	// disabled tenant receives nothing regardless of policy.
	ShouldNotifyRaid(settings *tenant.Settings, category types.RaidCategory, now Instant) bool

	// ShouldNotifyDailyReset gates the daily reset reminder.
	ShouldNotifyDailyReset(settings *tenant.Settings, now Instant) bool

	// DispatchRaidRotation pushes today's rotation digest to every gated
	// tenant.
	DispatchRaidRotation(ctx context.Context) (*dto.DispatchSummary, error)

	// DispatchDailyReset pushes the daily reset reminder to every gated
	// tenant.
	DispatchDailyReset(ctx context.Context) (*dto.DispatchSummary, error)

	// DispatchExpiryReminders messages every tenant whose time-boxed
	// entitlement has lapsed.
	DispatchExpiryReminders(ctx context.Context) (*dto.DispatchSummary, error)
}

// Instant aliases time.Time for the pure gate signatures.
type Instant = time.Time

type notificationService struct {
	ServiceParams
	entitlements EntitlementService
}

// NewNotificationService creates the notification service.
func NewNotificationService(params ServiceParams, entitlements EntitlementService) NotificationService {
	return &notificationService{ServiceParams: params, entitlements: entitlements}
}

func (s *notificationService) ShouldNotifyRaid(settings *tenant.Settings, category types.RaidCategory, now Instant) bool {
	if !settings.ActiveAt(now) {
		return false
	}
	switch settings.RaidNotificationPolicy {
	case types.RaidNotificationOff:
		return false
	case types.RaidNotificationFiltered:
		return types.IsPrivilegedRaidCategory(category)
	default:
		return true
	}
}

func (s *notificationService) ShouldNotifyDailyReset(settings *tenant.Settings, now Instant) bool {
	return settings.DailyResetNotification && settings.ActiveAt(now)
}

func (s *notificationService) DispatchRaidRotation(ctx context.Context) (*dto.DispatchSummary, error) {
	now := s.Clock.Now()
	slot := s.Rotation.SlotAt(now, 0)
	text := formatRaidDigest(slot)

	return s.sweep(ctx, func(settings *tenant.Settings) (string, bool) {
		if !s.ShouldNotifyRaid(settings, slot.Category, now) {
			return "", false
		}
		return text, true
	})
}

func (s *notificationService) DispatchDailyReset(ctx context.Context) (*dto.DispatchSummary, error) {
	now := s.Clock.Now()
	reset := s.Rotation.NextDailyReset(now)
	hours, minutes := rotation.TimeUntil(reset, now)
	text := formatResetReminder(hours, minutes)

	return s.sweep(ctx, func(settings *tenant.Settings) (string, bool) {
		if !s.ShouldNotifyDailyReset(settings, now) {
			return "", false
		}
		return text, true
	})
}

func (s *notificationService) DispatchExpiryReminders(ctx context.Context) (*dto.DispatchSummary, error) {
	expired, err := s.entitlements.ListExpired(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	summary := &dto.DispatchSummary{Tenants: len(expired)}
	var mu sync.Mutex

	workers := pool.New().WithMaxGoroutines(dispatchWorkers)
	for _, settings := range expired {
		settings := settings
		workers.Go(func() {
			text := formatExpiryReminder(settings)
			err := s.Bus.Publish(ctx, &sender.OutboundMessage{
				TenantID:   settings.TenantID,
				Text:       text,
				EnqueuedAt: now,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				return
			}
			summary.Notified++
		})
	}
	workers.Wait()

	s.Logger.Infow("expiry reminder sweep finished",
		"tenants", summary.Tenants, "notified", summary.Notified, "failed", summary.Failed)
	return summary, nil
}

// sweep runs the gate over every tenant and publishes the produced message
// for those that pass.
func (s *notificationService) sweep(ctx context.Context, gate func(*tenant.Settings) (string, bool)) (*dto.DispatchSummary, error) {
	tenants, err := s.TenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	summary := &dto.DispatchSummary{Tenants: len(tenants)}
	var mu sync.Mutex

	workers := pool.New().WithMaxGoroutines(dispatchWorkers)
	for _, settings := range tenants {
		settings := settings
		workers.Go(func() {
			text, ok := gate(settings)
			mu.Lock()
			defer mu.Unlock()
			if !ok {
				summary.Skipped++
				return
			}
			if err := s.Bus.Publish(ctx, &sender.OutboundMessage{
				TenantID:   settings.TenantID,
				Text:       text,
				EnqueuedAt: now,
			}); err != nil {
				summary.Failed++
				return
			}
			summary.Notified++
		})
	}
	workers.Wait()

	s.Logger.Infow("notification sweep finished",
		"tenants", summary.Tenants,
		"notified", summary.Notified,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return summary, nil
}

func formatRaidDigest(slot rotation.Slot) string {
	return fmt.Sprintf("Today's raid rotation: %s and %s (%s tier). Good hunting!",
		slot.BossA, slot.BossB, slot.Category)
}

func formatResetReminder(hours, minutes int) string {
	return fmt.Sprintf("Daily reset incoming: %dh %dm to go. Spend your energy before it refreshes!",
		hours, minutes)
}

func formatExpiryReminder(settings *tenant.Settings) string {
	name := "there"
	if settings.Entitlement.OwnerContact != nil && settings.Entitlement.OwnerContact.Name != "" {
		name = settings.Entitlement.OwnerContact.Name
	}
	return fmt.Sprintf("Hi %s, this group's bot access has expired. Renew to keep rotation and reset notifications coming.", name)
}
