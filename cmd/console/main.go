package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/propertyops/maintenance-console/internal/api/rest"
	"github.com/propertyops/maintenance-console/internal/api/rest/handlers"
	"github.com/propertyops/maintenance-console/internal/cache"
	"github.com/propertyops/maintenance-console/internal/facility"
	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/internal/workers"
	"github.com/propertyops/maintenance-console/pkg/auth"
	"github.com/propertyops/maintenance-console/pkg/config"
	"github.com/propertyops/maintenance-console/pkg/database"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting Maintenance Console API",
		logger.String("version", cfg.App.Version),
		logger.String("environment", cfg.App.Environment),
	)

	// Initialize Redis
	redis, err := database.NewRedisClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()

	// Initialize metrics
	m := metrics.New()

	// Initialize facility backend client and read cache
	facilityClient := facility.NewClient(&cfg.Facility, log, m)
	readCache := cache.New(redis.Client, &cfg.Cache, log)

	// Initialize JWT manager
	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		if cfg.App.Environment == "production" {
			return fmt.Errorf("JWT_SECRET environment variable must be set in production")
		}
		jwtSecret = "default-secret-change-this-in-production"
		log.Warn("JWT_SECRET not set, using default (INSECURE - only for development)")
	}
	jwtManager := auth.NewJWTManager(jwtSecret)

	// Initialize services
	sessionService := services.NewSessionService(log, m, cfg.Session.IdleTTL)
	referenceService := services.NewReferenceService(facilityClient, readCache, log, m)
	generationService := services.NewGenerationService(facilityClient, readCache, log, m)
	jobService := services.NewJobService(facilityClient, readCache, log, m)

	// Initialize and start the session reaper worker
	reaperWorker := workers.NewSessionReaperWorker(sessionService, log, cfg.Session.ReapInterval)
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	reaperWorker.Start(workerCtx)

	// Initialize handlers
	h := handlers.NewHandlers(
		log,
		referenceService,
		sessionService,
		generationService,
		jobService,
		redis,
		cfg.App.Version,
	)

	// Initialize router
	router := rest.NewRouter(log, h, jwtManager, m)
	router.SetupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("API server listening", logger.String("address", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", logger.String("signal", sig.String()))

		// Stop background workers first
		reaperWorker.Stop()

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
