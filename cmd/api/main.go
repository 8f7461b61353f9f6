package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-management/internal/assignment"
	"property-management/internal/config"
	"property-management/internal/database"
	"property-management/internal/handlers"
	"property-management/internal/logger"
	"property-management/internal/metrics"
	"property-management/internal/ratelimit"
	"property-management/internal/scheduler"
	"property-management/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config from %s: %w", configPath, err)
	}

	log := logger.New(logger.Config{
		Level:       appConfig.Logging.Level,
		ServiceName: "property-management-api",
		Development: appConfig.Logging.Development,
	})
	logger.SetGlobal(log)
	defer func() { _ = log.Sync() }()

	log.Info("configuration loaded",
		zap.String("path", configPath),
		zap.String("environment", appConfig.App.Environment),
		zap.String("database", appConfig.Database.Type))

	// Initialize database based on configuration
	gormDB, err := database.NewGormDB(appConfig.Database, log)
	if err != nil {
		return err
	}
	defer gormDB.Close()

	if err := gormDB.InitSchema(); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	st := store.New(gormDB)
	reg := metrics.New()

	assigner := assignment.NewService(st,
		assignment.WithAllowActiveTenantReassign(appConfig.Assignment.AllowActiveTenantReassign),
		assignment.WithLogger(log),
		assignment.WithRecorder(reg),
	)

	// Initialize rate limiter
	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Info("rate limiter initialized",
		zap.Int("per_minute", appConfig.RateLimit.RequestsPerMinute),
		zap.Int("per_hour", appConfig.RateLimit.RequestsPerHour),
		zap.Bool("enabled", appConfig.RateLimit.Enabled))

	// Initialize and start scheduler
	appScheduler := scheduler.NewScheduler(appConfig.Metrics, reg, gormDB, rateLimiter, log)
	if err := appScheduler.Start(); err != nil {
		log.Warn("failed to start scheduler", zap.Error(err))
	}
	defer appScheduler.Stop()

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := handlers.NewRouter(handlers.RouterDeps{
		Config:    appConfig,
		Store:     st,
		Assigner:  assigner,
		Metrics:   reg,
		Probe:     gormDB,
		Limiter:   rateLimiter,
		Scheduler: appScheduler,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", appConfig.Server.Port),
		Handler:      r,
		ReadTimeout:  appConfig.Server.GetReadTimeout(),
		WriteTimeout: appConfig.Server.GetWriteTimeout(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.GetShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
