package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/di"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/seed"
	"github.com/rahulAtGit/ZentriqVision/interfaces/http/rest"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"

	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"
)

func main() {
	// Initialize context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	if cfg.StoreBackend == config.StoreMemory {
		records, err := seed.Demo(auth.DefaultOrgID, "local-user", time.Now())
		if err != nil {
			logger.Fatal("Failed to build demo data", zap.Error(err))
		}
		if _, err := seed.Load(ctx, container.Store, records, logger); err != nil {
			logger.Fatal("Failed to seed in-memory store", zap.Error(err))
		}
	}

	opts := []rest.Option{rest.WithReadinessCheck(container.Ready)}
	if container.Metrics.Collector != nil {
		opts = append(opts, rest.WithCollector(container.Metrics.Collector))
	}
	if cfg.AuthRateLimit > 0 {
		opts = append(opts, rest.WithAuthRateLimiter(auth.NewIPRateLimiter(cfg.AuthRateLimit)))
	}

	// Create router
	router := rest.NewRouter(
		container.CommandBus,
		container.QueryBus,
		container.Accounts,
		container.Validator,
		container.ErrorHandler,
		logger,
		opts...,
	)

	var handler http.Handler = router.Setup()
	if cfg.EnableTracing {
		handler = xray.Handler(xray.NewFixedSegmentNamer(di.ServiceName), handler)
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("store", cfg.StoreBackend),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	container.Shutdown(shutdownCtx)
	log.Println("Server stopped")
}
