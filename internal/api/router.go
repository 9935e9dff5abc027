package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/api/cron"
	v1 "github.com/groupwarden/groupwarden/internal/api/v1"
	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/rest/middleware"
)

// Handlers carries every route handler the router wires up.
type Handlers struct {
	Tenant      *v1.TenantHandler
	Entitlement *v1.EntitlementHandler
	Rotation    *v1.RotationHandler
	Permission  *v1.PermissionHandler
	Webhook     *v1.PaymentWebhookHandler
	CronNotify  *cron.NotificationCronHandler
}

// NewRouter builds the gin engine with the shared middleware chain and all
// route groups.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestContextMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.SentryMiddleware(cfg),
		middleware.SentryTenantContextMiddleware,
		middleware.ErrorHandlerMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	verRouter := router.Group("/v1")

	tenants := verRouter.Group("/tenants/:tenant_id")
	{
		tenants.GET("/settings", handlers.Tenant.GetSettings)
		tenants.PUT("/settings", handlers.Tenant.UpdateSettings)
		tenants.PUT("/settings/permissions", handlers.Tenant.SetCommandPermission)
		tenants.PUT("/settings/antispam", handlers.Tenant.UpdateAntiSpam)

		tenants.GET("/entitlement", handlers.Entitlement.Status)
		tenants.POST("/entitlement/activate", handlers.Entitlement.Activate)
		tenants.POST("/entitlement/extend", handlers.Entitlement.Extend)
		tenants.POST("/entitlement/deactivate", handlers.Entitlement.Deactivate)
	}

	rotation := verRouter.Group("/rotation")
	{
		rotation.GET("/day", handlers.Rotation.Day)
		rotation.GET("/search", handlers.Rotation.Find)
		rotation.GET("/reset", handlers.Rotation.NextReset)
	}

	verRouter.POST("/permissions/resolve", handlers.Permission.Resolve)

	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/payments", handlers.Webhook.Handle)
	}

	cronRouter := router.Group("/cron")
	{
		cronRouter.POST("/notifications/rotation", handlers.CronNotify.DispatchRaidRotation)
		cronRouter.POST("/notifications/reset", handlers.CronNotify.DispatchDailyReset)
		cronRouter.POST("/notifications/expiry", handlers.CronNotify.DispatchExpiryReminders)
	}

	return router
}
