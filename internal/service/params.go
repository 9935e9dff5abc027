package service

import (
	"github.com/groupwarden/groupwarden/internal/clock"
	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/domain/rotation"
	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/sender"
	"github.com/groupwarden/groupwarden/internal/transport"
)

// ServiceParams bundles the dependencies shared by every service. Services
// embed it and pick what they need.
type ServiceParams struct {
	Logger     *logger.Logger
	Config     *config.Configuration
	Clock      clock.Clock
	TenantRepo tenant.Repository
	Transport  transport.ChatTransport
	Rotation   *rotation.Calculator
	Bus        *sender.Bus
}
