package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/groupwarden/groupwarden/internal/api"
	"github.com/groupwarden/groupwarden/internal/api/cron"
	v1 "github.com/groupwarden/groupwarden/internal/api/v1"
	"github.com/groupwarden/groupwarden/internal/clock"
	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/domain/rotation"
	"github.com/groupwarden/groupwarden/internal/integration/payments"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/redis"
	redisRepo "github.com/groupwarden/groupwarden/internal/repository/redis"
	"github.com/groupwarden/groupwarden/internal/sender"
	"github.com/groupwarden/groupwarden/internal/service"
	"github.com/groupwarden/groupwarden/internal/transport"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	if cfg.Sentry.Enabled {
		if err := sentrygo.Init(sentrygo.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			TracesSampleRate: cfg.Sentry.SampleRate,
		}); err != nil {
			appLogger.Warnw("failed to initialize sentry", "error", err)
		} else {
			defer sentrygo.Flush(2 * time.Second)
		}
	}

	redisClient, err := redis.NewClient(cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	calculator, err := rotation.NewCalculator(cfg.Rotation)
	if err != nil {
		appLogger.Fatalw("invalid rotation configuration", "error", err)
	}

	clk := clock.New()
	tenantRepo := redisRepo.NewTenantRepository(redisClient, clk, appLogger)
	chatTransport := transport.NewGatewayClient(cfg.ChatGateway, appLogger)
	bus := sender.NewBus(appLogger)
	defer bus.Close()

	params := service.ServiceParams{
		Logger:     appLogger,
		Config:     cfg,
		Clock:      clk,
		TenantRepo: tenantRepo,
		Transport:  chatTransport,
		Rotation:   calculator,
		Bus:        bus,
	}

	entitlementService := service.NewEntitlementService(params)
	permissionService := service.NewPermissionService(params)
	tenantService := service.NewTenantService(params)
	rotationService := service.NewRotationService(params)
	notificationService := service.NewNotificationService(params, entitlementService)
	paymentHandler := payments.NewHandler(entitlementService, appLogger)

	handlers := api.Handlers{
		Tenant:      v1.NewTenantHandler(tenantService, appLogger),
		Entitlement: v1.NewEntitlementHandler(entitlementService, appLogger),
		Rotation:    v1.NewRotationHandler(rotationService, appLogger),
		Permission:  v1.NewPermissionHandler(permissionService, appLogger),
		Webhook:     v1.NewPaymentWebhookHandler(paymentHandler, cfg, appLogger),
		CronNotify:  cron.NewNotificationCronHandler(notificationService, appLogger),
	}

	router := api.NewRouter(handlers, cfg, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Drain the outbound topic for the lifetime of the process.
	go func() {
		if err := bus.Run(ctx, chatTransport); err != nil {
			appLogger.Errorw("outbound sender stopped", "error", err)
		}
	}()

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		appLogger.Infow("starting server", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("graceful shutdown failed", "error", err)
	}
}
