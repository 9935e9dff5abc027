package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	UUID_PREFIX_ACTIVATION = "act"
	UUID_PREFIX_MESSAGE    = "msg"
	UUID_PREFIX_REQUEST    = "req"
	UUID_PREFIX_PAYMENT    = "pay"
)

// GenerateUUID returns a lowercase uuid without dashes.
func GenerateUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// GenerateUUIDWithPrefix returns a uuid prefixed with the entity short code,
// e.g. act_0194f1f0a2... so ids are self-describing in logs.
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
