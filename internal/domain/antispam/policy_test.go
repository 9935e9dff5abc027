package antispam

import (
	"testing"

	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/stretchr/testify/assert"
)

func blockingPolicy(action types.AntiSpamAction, allowed ...string) tenant.AntiSpamPolicy {
	return tenant.AntiSpamPolicy{
		Enabled:         true,
		BlockDisallowed: true,
		Action:          action,
		AllowedDomains:  allowed,
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		policy tenant.AntiSpamPolicy
		want   Verdict
	}{
		{
			name:   "disabled policy ignores everything",
			text:   "https://scam.example join now",
			policy: tenant.AntiSpamPolicy{},
			want:   VerdictIgnore,
		},
		{
			name: "enabled but not blocking ignores links",
			text: "https://scam.example",
			policy: tenant.AntiSpamPolicy{
				Enabled: true,
				Action:  types.AntiSpamActionDelete,
			},
			want: VerdictIgnore,
		},
		{
			name:   "plain text passes",
			policy: blockingPolicy(types.AntiSpamActionDelete),
			text:   "raid at 8pm, bring potions",
			want:   VerdictIgnore,
		},
		{
			name:   "bare domain without scheme passes",
			policy: blockingPolicy(types.AntiSpamActionDelete),
			text:   "check example.com later",
			want:   VerdictIgnore,
		},
		{
			name:   "disallowed link is deleted",
			policy: blockingPolicy(types.AntiSpamActionDelete, "example.com"),
			text:   "join https://free-gems.example now",
			want:   VerdictDelete,
		},
		{
			name:   "warn action yields a warning",
			policy: blockingPolicy(types.AntiSpamActionWarn, "example.com"),
			text:   "https://free-gems.example",
			want:   VerdictWarn,
		},
		{
			name:   "allowlisted host passes",
			policy: blockingPolicy(types.AntiSpamActionDelete, "example.com"),
			text:   "guide: https://example.com/rotation",
			want:   VerdictIgnore,
		},
		{
			name:   "subdomain of allowlisted host passes",
			policy: blockingPolicy(types.AntiSpamActionDelete, "example.com"),
			text:   "see https://docs.example.com/setup",
			want:   VerdictIgnore,
		},
		{
			name:   "lookalike suffix does not pass",
			policy: blockingPolicy(types.AntiSpamActionDelete, "example.com"),
			text:   "https://evilexample.com",
			want:   VerdictDelete,
		},
		{
			name:   "one bad link among allowed ones is enough",
			policy: blockingPolicy(types.AntiSpamActionDelete, "example.com"),
			text:   "https://example.com ok but https://bad.example too",
			want:   VerdictDelete,
		},
		{
			name:   "host match is case-insensitive",
			policy: blockingPolicy(types.AntiSpamActionDelete, "Example.COM"),
			text:   "HTTPS://EXAMPLE.COM/path",
			want:   VerdictIgnore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.text, tt.policy))
		})
	}
}
