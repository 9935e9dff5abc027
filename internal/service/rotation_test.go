package service

import (
	"testing"

	"github.com/groupwarden/groupwarden/internal/domain/rotation"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type RotationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RotationService
}

func TestRotationService(t *testing.T) {
	suite.Run(t, new(RotationServiceSuite))
}

func (s *RotationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRotationService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		Clock:      s.GetClock(),
		TenantRepo: s.GetStores().Tenant,
		Transport:  s.GetTransport(),
		Rotation:   s.GetRotation(),
		Bus:        s.GetBus(),
	})
}

// The suite clock is frozen at 2025-03-10 12:00 UTC, which is 19:00 at the
// configured UTC+7 offset and a whole number of cycles past the epoch.
func (s *RotationServiceSuite) TestDay() {
	today := s.service.Day(s.GetContext(), 0)
	s.Equal("2025-03-10", today.Date)
	s.Equal(0, today.SlotIndex)
	s.Equal(rotation.Schedule[0], today.Slot)

	tomorrow := s.service.Day(s.GetContext(), 1)
	s.Equal("2025-03-11", tomorrow.Date)
	s.Equal(1, tomorrow.SlotIndex)

	yesterday := s.service.Day(s.GetContext(), -1)
	s.Equal("2025-03-09", yesterday.Date)
	s.Equal(rotation.SlotCount-1, yesterday.SlotIndex)
}

func (s *RotationServiceSuite) TestFind() {
	resp, err := s.service.Find(s.GetContext(), "emberlord")
	s.NoError(err)
	s.True(resp.Occurrence.IsToday)
	s.Equal(0, resp.Occurrence.DaysUntil)

	_, err = s.service.Find(s.GetContext(), "nobody")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *RotationServiceSuite) TestNextReset() {
	resp := s.service.NextReset(s.GetContext())

	// 19:00 local, reset at 04:00: nine hours to tomorrow's reset.
	s.Equal(9, resp.HoursUntil)
	s.Equal(0, resp.MinutesUntil)

	local := resp.NextReset.In(s.GetRotation().Location())
	s.Equal(4, local.Hour())
	s.Equal(11, local.Day())
}
