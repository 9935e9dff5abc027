package dto

import (
	"time"

	"github.com/groupwarden/groupwarden/internal/domain/rotation"
)

// RotationDayResponse describes one day of the raid rotation.
type RotationDayResponse struct {
	Date      string        `json:"date"`
	SlotIndex int           `json:"slot_index"`
	Slot      rotation.Slot `json:"slot"`
}

// RotationSearchResponse is the result of a boss lookup.
type RotationSearchResponse struct {
	Query      string              `json:"query"`
	Occurrence rotation.Occurrence `json:"occurrence"`
}

// ResetCountdownResponse reports the next daily reset instant and the time
// remaining until it.
type ResetCountdownResponse struct {
	NextReset    time.Time `json:"next_reset"`
	HoursUntil   int       `json:"hours_until"`
	MinutesUntil int       `json:"minutes_until"`
}
