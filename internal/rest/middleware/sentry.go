package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/types"
)

// SentryMiddleware captures errors and performance data when Sentry is
// enabled; otherwise it is a pass-through.
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryTenantContextMiddleware tags the Sentry scope with the tenant id
// when the request carries one. Add after RequestContextMiddleware.
func SentryTenantContextMiddleware(c *gin.Context) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		c.Next()
		return
	}
	if tenantID := types.GetTenantID(c.Request.Context()); tenantID != "" {
		hub.Scope().SetTag("tenant_id", tenantID)
	}
	c.Next()
}
