package testutil

import (
	"context"
	"time"

	"github.com/groupwarden/groupwarden/internal/clock"
	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/domain/rotation"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/sender"
	"github.com/stretchr/testify/suite"
)

// Stores bundles the in-memory repositories used by service tests.
type Stores struct {
	Tenant *InMemoryTenantStore
}

// BaseServiceTestSuite wires deterministic versions of every shared
// dependency: a frozen clock, in-memory stores, a fake transport and an
// in-process bus.
type BaseServiceTestSuite struct {
	suite.Suite

	ctx       context.Context
	logger    *logger.Logger
	config    *config.Configuration
	clock     *clock.Mock
	stores    Stores
	transport *FakeTransport
	bus       *sender.Bus
	rotation  *rotation.Calculator
}

// SetupTest initializes fresh dependencies before each test.
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = logger.NewNopLogger()
	s.config = config.GetDefaultConfig()
	// Frozen at a mid-day instant so day-boundary assertions are explicit.
	s.clock = clock.NewMock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	s.stores = Stores{Tenant: NewInMemoryTenantStore(s.clock)}
	s.transport = NewFakeTransport()
	s.bus = sender.NewBus(s.logger)

	calc, err := rotation.NewCalculator(s.config.Rotation)
	s.Require().NoError(err)
	s.rotation = calc
}

// TearDownTest closes resources after each test.
func (s *BaseServiceTestSuite) TearDownTest() {
	if s.bus != nil {
		_ = s.bus.Close()
	}
}

// GetContext returns the test context.
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetLogger returns the test logger.
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the default test configuration.
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetClock returns the mock clock.
func (s *BaseServiceTestSuite) GetClock() *clock.Mock {
	return s.clock
}

// GetStores returns the in-memory stores.
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetTransport returns the fake transport.
func (s *BaseServiceTestSuite) GetTransport() *FakeTransport {
	return s.transport
}

// GetBus returns the in-process bus.
func (s *BaseServiceTestSuite) GetBus() *sender.Bus {
	return s.bus
}

// GetRotation returns the rotation calculator built from the default config.
func (s *BaseServiceTestSuite) GetRotation() *rotation.Calculator {
	return s.rotation
}
