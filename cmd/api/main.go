package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appadmin "wastetrack/internal/app/admin"
	appdriver "wastetrack/internal/app/driver"
	apphospital "wastetrack/internal/app/hospital"
	apppickup "wastetrack/internal/app/pickup"
	"wastetrack/internal/cache"
	"wastetrack/internal/config"
	"wastetrack/internal/db"
	"wastetrack/internal/db/repository"
	adminhandler "wastetrack/internal/http/handlers/admin"
	driverhandler "wastetrack/internal/http/handlers/driver"
	"wastetrack/internal/http/handlers/health"
	hospitalhandler "wastetrack/internal/http/handlers/hospital"
	"wastetrack/internal/http/router"
	"wastetrack/internal/http/session"
	"wastetrack/internal/kafka"
	"wastetrack/internal/logging"
	"wastetrack/internal/storage"
	"wastetrack/internal/telemetry"
)

func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Load configuration (.env is optional, real env wins)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2) Initialize logger
	logger := logging.New(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceEnv,
	)

	logger.Info("starting service",
		"env", cfg.Environment,
	)

	// 3) Initialize telemetry (OpenTelemetry)
	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// 4) Initialize Postgres, run migrations, seed the first admin
	dbClient, err := db.NewClient(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(dbClient *db.Client) {
		_ = dbClient.Close()
	}(dbClient)

	if err := dbClient.SeedAdmin(cfg.Admin); err != nil {
		logger.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	// 5) Initialize Redis (optional; dashboard falls back to recompute)
	dashboardCache := cache.DashboardCache(cache.NoopDashboardCache{})
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to init redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		dashboardCache = cache.NewDashboardCache(redisClient)
	}

	// 6) Initialize Kafka bus (Watermill)
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka bus", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = closeBus(context.Background())
	}()

	// 7) Kafka router (for consumers)
	kafkaRouter, err := kafka.NewRouter(ctx, cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka router", "error", err)
		os.Exit(1)
	}

	// 8) Construct repositories & services
	adminRepo := repository.NewAdminRepository(dbClient, logger)
	hospitalRepo := repository.NewHospitalRepository(dbClient, logger)
	driverRepo := repository.NewDriverRepository(dbClient, logger)
	pickupRepo := repository.NewPickupRepository(dbClient, logger)

	photoStore := storage.NewLocal(cfg.Upload.Dir)
	pickupEvents := kafka.NewPickupEvents(bus, cfg.Kafka, logger)

	adminService := appadmin.NewService(adminRepo, pickupRepo, hospitalRepo, driverRepo, dashboardCache, logger)
	hospitalService := apphospital.NewService(hospitalRepo, logger)
	driverService := appdriver.NewService(driverRepo, logger)
	pickupService := apppickup.NewService(pickupRepo, hospitalRepo, photoStore, pickupEvents, logger)

	// 9) HTTP handlers
	guard := session.NewGuard(adminRepo, hospitalRepo, driverRepo)
	secureCookie := cfg.IsProduction()

	healthHandler := health.NewHandler(dbClient)
	adminHandler := adminhandler.NewHandler(adminService, hospitalService, driverService, secureCookie, logger)
	driverHandler := driverhandler.NewHandler(driverService, hospitalService, pickupService, secureCookie, logger)
	hospitalHandler := hospitalhandler.NewHandler(hospitalService, pickupService, secureCookie, logger)

	// 10) HTTP router
	httpRouter := router.NewRouter(
		logger,
		guard,
		healthHandler,
		adminHandler,
		driverHandler,
		hospitalHandler,
		cfg.Upload.Dir,
	)

	// 11) HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: otelhttp.NewHandler(
			httpRouter,
			cfg.Observability.ServiceName, // span name prefix
		),
	}

	// 12) Start concurrent processes (HTTP server, Kafka router)
	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		logger.Info("kafka router starting")
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// 13) Wait for shutdown signal or an error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from subsystem", "error", err)
		stop()
	}

	// 14) Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
}
