package service

import (
	"context"

	"github.com/groupwarden/groupwarden/internal/api/dto"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/samber/lo"
)

// TenantService manages per-tenant settings: toggles, command access policy
// and the anti-spam configuration.
type TenantService interface {
	// GetSettings returns the tenant's settings, creating defaults on
	// first access.
	GetSettings(ctx context.Context, tenantID string) (*dto.SettingsResponse, error)

	// UpdateSettings applies a partial settings update.
	UpdateSettings(ctx context.Context, tenantID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)

	// SetCommandPermission changes one group command's access level.
	SetCommandPermission(ctx context.Context, tenantID string, req *dto.SetCommandPermissionRequest) (*dto.SettingsResponse, error)

	// UpdateAntiSpam replaces the tenant's anti-spam policy.
	UpdateAntiSpam(ctx context.Context, tenantID string, req *dto.UpdateAntiSpamRequest) (*dto.SettingsResponse, error)
}

type tenantService struct {
	ServiceParams
}

// NewTenantService creates the tenant settings service.
func NewTenantService(params ServiceParams) TenantService {
	return &tenantService{ServiceParams: params}
}

func (s *tenantService) GetSettings(ctx context.Context, tenantID string) (*dto.SettingsResponse, error) {
	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return dto.NewSettingsResponse(settings), nil
}

func (s *tenantService) UpdateSettings(ctx context.Context, tenantID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.BotEnabled != nil {
		settings.BotEnabled = *req.BotEnabled
	}
	if req.RaidNotificationPolicy != nil {
		settings.RaidNotificationPolicy = *req.RaidNotificationPolicy
	}
	if req.DailyResetNotification != nil {
		settings.DailyResetNotification = *req.DailyResetNotification
	}

	if err := s.TenantRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.Logger.Infow("tenant settings updated", "tenant_id", tenantID)
	return dto.NewSettingsResponse(settings), nil
}

func (s *tenantService) SetCommandPermission(ctx context.Context, tenantID string, req *dto.SetCommandPermissionRequest) (*dto.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if settings.CommandPermissions == nil {
		settings.CommandPermissions = types.DefaultCommandPermissions()
	}
	settings.CommandPermissions[req.Command] = req.AccessLevel

	if err := s.TenantRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.Logger.Infow("command permission updated",
		"tenant_id", tenantID,
		"command", req.Command,
		"access_level", req.AccessLevel)
	return dto.NewSettingsResponse(settings), nil
}

func (s *tenantService) UpdateAntiSpam(ctx context.Context, tenantID string, req *dto.UpdateAntiSpamRequest) (*dto.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.TenantRepo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	settings.AntiSpam.Enabled = req.Enabled
	settings.AntiSpam.BlockDisallowed = req.BlockDisallowed
	if req.Action != "" {
		settings.AntiSpam.Action = req.Action
	}
	settings.AntiSpam.AllowedDomains = lo.Uniq(req.AllowedDomains)

	if err := s.TenantRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.Logger.Infow("anti-spam policy updated", "tenant_id", tenantID, "enabled", req.Enabled)
	return dto.NewSettingsResponse(settings), nil
}
