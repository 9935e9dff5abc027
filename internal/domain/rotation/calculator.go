package rotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/groupwarden/groupwarden/internal/config"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
)

// Occurrence is the result of searching the schedule for a boss.
type Occurrence struct {
	Slot      Slot `json:"slot"`
	SlotIndex int  `json:"slot_index"`
	DaysUntil int  `json:"days_until"`
	IsToday   bool `json:"is_today"`
}

// Calculator owns every piece of rotation calendar math. A single instance is
// constructed from configuration and shared, so the epoch anchor, the daily
// reset instant and message formatting all use one fixed offset. Calendar-day
// differences at the offset boundary stay consistent because no other call
// site does its own offset arithmetic.
//
// All methods take time explicitly and are pure.
type Calculator struct {
	epoch       time.Time
	location    *time.Location
	resetHour   int
	resetMinute int
}

// NewCalculator builds a Calculator from the rotation configuration.
func NewCalculator(cfg config.RotationConfig) (*Calculator, error) {
	location := time.FixedZone(fmt.Sprintf("UTC%+d", cfg.UTCOffsetHours), cfg.UTCOffsetHours*3600)

	epoch, err := time.ParseInLocation("2006-01-02", cfg.EpochDate, location)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid rotation epoch date: %s", cfg.EpochDate).
			Mark(ierr.ErrValidation)
	}

	return &Calculator{
		epoch:       epoch,
		location:    location,
		resetHour:   cfg.ResetHour,
		resetMinute: cfg.ResetMinute,
	}, nil
}

// Location returns the fixed offset all rotation math is performed in.
func (c *Calculator) Location() *time.Location {
	return c.location
}

// CurrentSlot maps an instant to its slot index: the calendar-day difference
// from the epoch, in the configured offset, modulo the cycle length.
func (c *Calculator) CurrentSlot(now time.Time) int {
	local := now.In(c.location)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.location)

	// Both instants are midnights in the same fixed offset, so the elapsed
	// duration is an exact whole number of days.
	days := int(day.Sub(c.epoch) / (24 * time.Hour))
	return ((days % SlotCount) + SlotCount) % SlotCount
}

// SlotAt returns the slot dayOffset days from now. Negative offsets look
// backwards.
func (c *Calculator) SlotAt(now time.Time, dayOffset int) Slot {
	index := ((c.CurrentSlot(now)+dayOffset)%SlotCount + SlotCount) % SlotCount
	return Schedule[index]
}

// FindNext scans the schedule for the first boss matching name
// (case-insensitive substring) and reports how many days away its slot is.
func (c *Calculator) FindNext(now time.Time, name string) (*Occurrence, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, ierr.NewError("boss name is required").
			WithHint("Provide a boss name to search for").
			Mark(ierr.ErrValidation)
	}

	current := c.CurrentSlot(now)
	for offset := 0; offset < SlotCount; offset++ {
		index := (current + offset) % SlotCount
		slot := Schedule[index]
		if strings.Contains(strings.ToLower(slot.BossA), needle) ||
			strings.Contains(strings.ToLower(slot.BossB), needle) {
			return &Occurrence{
				Slot:      slot,
				SlotIndex: index,
				DaysUntil: offset,
				IsToday:   offset == 0,
			}, nil
		}
	}

	return nil, ierr.NewErrorf("no boss matches %q", name).
		WithHintf("No boss in the rotation matches %q", name).
		Mark(ierr.ErrNotFound)
}

// NextDailyReset returns the next occurrence of the fixed reset time-of-day.
// If now is already past today's reset, tomorrow's instant is returned.
func (c *Calculator) NextDailyReset(now time.Time) time.Time {
	local := now.In(c.location)
	reset := time.Date(local.Year(), local.Month(), local.Day(), c.resetHour, c.resetMinute, 0, 0, c.location)
	if !local.Before(reset) {
		reset = reset.AddDate(0, 0, 1)
	}
	return reset
}

// EndOfDay normalizes an instant to 23:59:59.999 of its calendar day in the
// configured offset, making a day-granular expiry inclusive of the whole day.
func (c *Calculator) EndOfDay(t time.Time) time.Time {
	local := t.In(c.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999_000_000, c.location)
}

// ParseDate parses a calendar date (2006-01-02) in the configured offset.
func (c *Calculator) ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", value, c.location)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Invalid date %q, expected YYYY-MM-DD", value).
			Mark(ierr.ErrValidation)
	}
	return parsed, nil
}

// TimeUntil decomposes the duration from now to target into floor hours and
// remainder minutes. A past target yields zeros.
func TimeUntil(target, now time.Time) (hours, minutes int) {
	remaining := target.Sub(now)
	if remaining <= 0 {
		return 0, 0
	}
	hours = int(remaining / time.Hour)
	minutes = int(remaining%time.Hour) / int(time.Minute)
	return hours, minutes
}
