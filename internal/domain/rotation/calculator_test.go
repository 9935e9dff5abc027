package rotation

import (
	"testing"
	"time"

	"github.com/groupwarden/groupwarden/internal/config"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(config.RotationConfig{
		EpochDate:      "2024-01-15",
		UTCOffsetHours: 7,
		ResetHour:      4,
		ResetMinute:    0,
	})
	require.NoError(t, err)
	return calc
}

func TestNewCalculatorRejectsBadEpoch(t *testing.T) {
	_, err := NewCalculator(config.RotationConfig{EpochDate: "15-01-2024", UTCOffsetHours: 7})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCurrentSlot(t *testing.T) {
	calc := newTestCalculator(t)
	offset := calc.Location()

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{
			name: "epoch day is slot zero",
			now:  time.Date(2024, 1, 15, 10, 0, 0, 0, offset),
			want: 0,
		},
		{
			name: "next day advances one slot",
			now:  time.Date(2024, 1, 16, 10, 0, 0, 0, offset),
			want: 1,
		},
		{
			name: "cycle wraps after twelve days",
			now:  time.Date(2024, 1, 27, 10, 0, 0, 0, offset),
			want: 0,
		},
		{
			name: "whole cycles later still slot zero",
			now:  time.Date(2025, 3, 10, 19, 0, 0, 0, offset),
			want: 0,
		},
		{
			name: "day before epoch is the last slot",
			now:  time.Date(2024, 1, 14, 10, 0, 0, 0, offset),
			want: 11,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.CurrentSlot(tt.now))
		})
	}
}

func TestCurrentSlotUsesConfiguredOffsetNotUTC(t *testing.T) {
	calc := newTestCalculator(t)

	// 18:00 UTC on the epoch day is already 01:00 next day at UTC+7: the
	// slot must follow the configured offset's calendar, not UTC's.
	lateUTC := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, calc.CurrentSlot(lateUTC))

	// Conversely 20:00 UTC the day before is 03:00 on the epoch day at +7.
	earlyUTC := time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, calc.CurrentSlot(earlyUTC))
}

func TestSlotAt(t *testing.T) {
	calc := newTestCalculator(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, calc.Location())

	assert.Equal(t, Schedule[0], calc.SlotAt(now, 0))
	assert.Equal(t, Schedule[3], calc.SlotAt(now, 3))
	assert.Equal(t, Schedule[0], calc.SlotAt(now, 12))
	assert.Equal(t, Schedule[11], calc.SlotAt(now, -1))
}

func TestFindNext(t *testing.T) {
	calc := newTestCalculator(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, calc.Location())

	occ, err := calc.FindNext(now, "frostmaw")
	require.NoError(t, err)
	assert.Equal(t, 0, occ.DaysUntil)
	assert.True(t, occ.IsToday)
	assert.Equal(t, 0, occ.SlotIndex)

	occ, err = calc.FindNext(now, "STORM")
	require.NoError(t, err)
	assert.Equal(t, 2, occ.DaysUntil)
	assert.False(t, occ.IsToday)
	assert.Equal(t, "Stormcaller", occ.Slot.BossA)

	occ, err = calc.FindNext(now, "Starfall")
	require.NoError(t, err)
	assert.Equal(t, 11, occ.DaysUntil)
}

func TestFindNextUnknownBoss(t *testing.T) {
	calc := newTestCalculator(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, calc.Location())

	_, err := calc.FindNext(now, "Nonexistus")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))

	_, err = calc.FindNext(now, "   ")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestNextDailyReset(t *testing.T) {
	calc := newTestCalculator(t)
	offset := calc.Location()

	before := time.Date(2024, 1, 15, 3, 0, 0, 0, offset)
	assert.Equal(t, time.Date(2024, 1, 15, 4, 0, 0, 0, offset), calc.NextDailyReset(before))

	after := time.Date(2024, 1, 15, 5, 0, 0, 0, offset)
	assert.Equal(t, time.Date(2024, 1, 16, 4, 0, 0, 0, offset), calc.NextDailyReset(after))

	exactly := time.Date(2024, 1, 15, 4, 0, 0, 0, offset)
	assert.Equal(t, time.Date(2024, 1, 16, 4, 0, 0, 0, offset), calc.NextDailyReset(exactly))
}

func TestEndOfDay(t *testing.T) {
	calc := newTestCalculator(t)

	// Noon UTC is evening at +7; end of day is that offset's day end.
	noonUTC := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	end := calc.EndOfDay(noonUTC)
	assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 999_000_000, calc.Location()), end)
}

func TestParseDate(t *testing.T) {
	calc := newTestCalculator(t)

	day, err := calc.ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, calc.Location()), day)

	_, err = calc.ParseDate("01/06/2024")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestTimeUntil(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	hours, minutes := TimeUntil(now.Add(3*time.Hour+45*time.Minute), now)
	assert.Equal(t, 3, hours)
	assert.Equal(t, 45, minutes)

	hours, minutes = TimeUntil(now.Add(2*time.Hour), now)
	assert.Equal(t, 2, hours)
	assert.Equal(t, 0, minutes)

	hours, minutes = TimeUntil(now.Add(-time.Minute), now)
	assert.Equal(t, 0, hours)
	assert.Equal(t, 0, minutes)
}
