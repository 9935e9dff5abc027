package service

import (
	"context"

	"github.com/groupwarden/groupwarden/internal/api/dto"
	"github.com/groupwarden/groupwarden/internal/domain/rotation"
)

// RotationService answers on-demand rotation queries. All math is delegated
// to the shared calculator so every caller agrees on the offset.
type RotationService interface {
	// Day returns the rotation dayOffset days from today.
	Day(ctx context.Context, dayOffset int) *dto.RotationDayResponse

	// Find locates the next occurrence of a boss by name.
	Find(ctx context.Context, name string) (*dto.RotationSearchResponse, error)

	// NextReset reports the next daily reset and the countdown to it.
	NextReset(ctx context.Context) *dto.ResetCountdownResponse
}

type rotationService struct {
	ServiceParams
}

// NewRotationService creates the rotation query service.
func NewRotationService(params ServiceParams) RotationService {
	return &rotationService{ServiceParams: params}
}

func (s *rotationService) Day(ctx context.Context, dayOffset int) *dto.RotationDayResponse {
	now := s.Clock.Now()
	slot := s.Rotation.SlotAt(now, dayOffset)
	index := (s.Rotation.CurrentSlot(now) + dayOffset%rotation.SlotCount + rotation.SlotCount) % rotation.SlotCount

	day := now.In(s.Rotation.Location()).AddDate(0, 0, dayOffset)
	return &dto.RotationDayResponse{
		Date:      day.Format("2006-01-02"),
		SlotIndex: index,
		Slot:      slot,
	}
}

func (s *rotationService) Find(ctx context.Context, name string) (*dto.RotationSearchResponse, error) {
	occurrence, err := s.Rotation.FindNext(s.Clock.Now(), name)
	if err != nil {
		return nil, err
	}
	return &dto.RotationSearchResponse{Query: name, Occurrence: *occurrence}, nil
}

func (s *rotationService) NextReset(ctx context.Context) *dto.ResetCountdownResponse {
	now := s.Clock.Now()
	reset := s.Rotation.NextDailyReset(now)
	hours, minutes := rotation.TimeUntil(reset, now)
	return &dto.ResetCountdownResponse{
		NextReset:    reset,
		HoursUntil:   hours,
		MinutesUntil: minutes,
	}
}
