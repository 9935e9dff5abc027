package antispam

import (
	"net/url"
	"strings"

	"github.com/groupwarden/groupwarden/internal/domain/tenant"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/samber/lo"
)

// Verdict is the outcome of evaluating a message against a tenant's
// anti-spam policy.
type Verdict string

const (
	VerdictIgnore Verdict = "ignore"
	VerdictWarn   Verdict = "warn"
	VerdictDelete Verdict = "delete"
)

// Evaluate inspects message text for links and applies the tenant policy.
// Links whose host matches the allowlist (exact or subdomain) are ignored;
// any other link yields the policy's configured action when the policy blocks
// disallowed links.
func Evaluate(text string, policy tenant.AntiSpamPolicy) Verdict {
	if !policy.Enabled || !policy.BlockDisallowed {
		return VerdictIgnore
	}

	hosts := extractHosts(text)
	if len(hosts) == 0 {
		return VerdictIgnore
	}

	disallowed := lo.Filter(hosts, func(host string, _ int) bool {
		return !hostAllowed(host, policy.AllowedDomains)
	})
	if len(disallowed) == 0 {
		return VerdictIgnore
	}

	if policy.Action == types.AntiSpamActionWarn {
		return VerdictWarn
	}
	return VerdictDelete
}

// extractHosts pulls hostnames out of http(s) links embedded in free text.
func extractHosts(text string) []string {
	var hosts []string
	for _, field := range strings.Fields(text) {
		lowered := strings.ToLower(field)
		if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
			continue
		}
		parsed, err := url.Parse(field)
		if err != nil || parsed.Hostname() == "" {
			continue
		}
		hosts = append(hosts, strings.ToLower(parsed.Hostname()))
	}
	return hosts
}

func hostAllowed(host string, allowed []string) bool {
	return lo.SomeBy(allowed, func(domain string) bool {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			return false
		}
		return host == domain || strings.HasSuffix(host, "."+domain)
	})
}
