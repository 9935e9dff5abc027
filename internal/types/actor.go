package types

import "strings"

// Actor identifies the person behind an inbound command.
type Actor struct {
	ContactID   string `json:"contact_id"`
	PhoneNumber string `json:"phone_number"`
	DisplayName string `json:"display_name,omitempty"`
}

// NormalizePhoneNumber strips every non-digit character so numbers compare
// reliably regardless of formatting ("+62 812-3456" == "628123456").
func NormalizePhoneNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SamePhoneNumber compares two phone numbers after normalization. Empty
// numbers never match anything.
func SamePhoneNumber(a, b string) bool {
	na, nb := NormalizePhoneNumber(a), NormalizePhoneNumber(b)
	return na != "" && na == nb
}
