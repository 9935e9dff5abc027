package redis

import (
	"context"
	"encoding/json"

	"github.com/groupwarden/groupwarden/internal/clock"
	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	redisClient "github.com/groupwarden/groupwarden/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

const (
	tenantKeyPrefix = "tenant:settings:"
	scanCount       = 100
)

// TenantRepository persists tenant settings as one JSON record per tenant.
// Each SET is atomic, which is the whole consistency contract: concurrent
// writers to the same tenant interleave last-write-wins.
type TenantRepository struct {
	client *redisClient.Client
	clock  clock.Clock
	log    *logger.Logger
}

// NewTenantRepository creates a redis-backed tenant.Repository.
func NewTenantRepository(client *redisClient.Client, clk clock.Clock, log *logger.Logger) tenant.Repository {
	return &TenantRepository{client: client, clock: clk, log: log}
}

func tenantKey(tenantID string) string {
	return tenantKeyPrefix + tenantID
}

func (r *TenantRepository) GetOrCreate(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	if tenantID == "" {
		return nil, ierr.NewError("tenant id is required").
			WithHint("Tenant id is required").
			Mark(ierr.ErrValidation)
	}

	settings, err := r.Get(ctx, tenantID)
	if err == nil {
		return settings, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	defaults := tenant.DefaultSettings(tenantID, r.clock.Now().UTC())
	payload, err := json.Marshal(defaults)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode default tenant settings").
			Mark(ierr.ErrInternal)
	}

	// SETNX keeps first-access materialization idempotent: if another
	// request won the race, its record stays and we read it back.
	created, err := r.client.GetClient().SetNX(ctx, tenantKey(tenantID), payload, 0).Result()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to create settings for tenant %s", tenantID).
			Mark(ierr.ErrDatabase)
	}
	if created {
		r.log.Infow("materialized default tenant settings", "tenant_id", tenantID)
		return defaults, nil
	}
	return r.Get(ctx, tenantID)
}

func (r *TenantRepository) Get(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	raw, err := r.client.GetClient().Get(ctx, tenantKey(tenantID)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, ierr.NewErrorf("tenant %s not found", tenantID).
				WithHintf("No settings exist for tenant %s", tenantID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHintf("Failed to load settings for tenant %s", tenantID).
			Mark(ierr.ErrDatabase)
	}

	settings := &tenant.Settings{}
	if err := json.Unmarshal([]byte(raw), settings); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Corrupt settings record for tenant %s", tenantID).
			Mark(ierr.ErrInternal)
	}
	return settings, nil
}

func (r *TenantRepository) Update(ctx context.Context, settings *tenant.Settings) error {
	if settings == nil {
		return ierr.NewError("settings cannot be nil").
			WithHint("Settings cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	settings.UpdatedAt = r.clock.Now().UTC()

	payload, err := json.Marshal(settings)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode tenant settings").
			Mark(ierr.ErrInternal)
	}

	if err := r.client.GetClient().Set(ctx, tenantKey(settings.TenantID), payload, 0).Err(); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to persist settings for tenant %s", settings.TenantID).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *TenantRepository) List(ctx context.Context) ([]*tenant.Settings, error) {
	var keys []string
	iter := r.client.GetClient().Scan(ctx, 0, tenantKeyPrefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan tenant settings").
			Mark(ierr.ErrDatabase)
	}
	if len(keys) == 0 {
		return []*tenant.Settings{}, nil
	}

	values, err := r.client.GetClient().MGet(ctx, keys...).Result()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load tenant settings batch").
			Mark(ierr.ErrDatabase)
	}

	result := make([]*tenant.Settings, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		settings := &tenant.Settings{}
		if err := json.Unmarshal([]byte(raw), settings); err != nil {
			r.log.Warnw("skipping corrupt tenant settings record", "key", keys[i], "error", err)
			continue
		}
		result = append(result, settings)
	}
	return result, nil
}
