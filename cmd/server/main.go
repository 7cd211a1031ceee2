package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DukeRupert/motorcheck/internal"
	"github.com/DukeRupert/motorcheck/internal/auth"
	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/handler"
	"github.com/DukeRupert/motorcheck/internal/jobs"
	"github.com/DukeRupert/motorcheck/internal/metrics"
	"github.com/DukeRupert/motorcheck/internal/middleware"
	"github.com/DukeRupert/motorcheck/internal/repository"
	"github.com/DukeRupert/motorcheck/internal/service"
	"github.com/DukeRupert/motorcheck/internal/storage"
	"github.com/DukeRupert/motorcheck/internal/worker"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository
	repo := repository.New(db)

	// Initialize file storage
	store, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	// Initialize token codec
	tokens, err := auth.NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token codec initialization failed: %w", err)
	}

	// Initialize services
	userService := service.NewUserService(repo, tokens, logger)
	bookingService := service.NewBookingService(repo, logger)
	reportService := service.NewReportService(repo, store, domain.SubmitPolicy{
		RequireItemRatings: cfg.SubmitRequireRatings,
	}, logger)

	// Initialize background worker
	var jobWorker *worker.Worker
	if cfg.WorkerEnabled {
		workerCfg := worker.DefaultConfig()
		workerCfg.Concurrency = cfg.WorkerConcurrency
		workerCfg.PollInterval = cfg.WorkerPollInterval
		workerCfg.JobTimeout = cfg.WorkerJobTimeout

		jobWorker, err = worker.New(db, repo, workerCfg, logger)
		if err != nil {
			return fmt.Errorf("worker initialization failed: %w", err)
		}
		jobWorker.Register(jobs.NewProcessPhotoHandler(store, service.NewImagingProcessor(), logger))
		jobWorker.Start(ctx)
	} else {
		logger.Warn("Background worker disabled; photo thumbnails will not be generated")
	}

	// Initialize middleware
	isSecure := cfg.Env != "development"
	authMw := middleware.NewAuthMiddleware(tokens, userService, logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	rateLimiter := middleware.NewAuthRateLimiter(logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, logger)
	bookingHandler := handler.NewBookingHandler(bookingService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics (basic auth)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Uploaded files (local storage only; R2 serves objects directly)
	if cfg.StorageProvider == "local" {
		fileFS := http.FileServer(http.Dir(cfg.LocalStoragePath))
		mux.Handle("GET /files/", http.StripPrefix("/files/", fileFS))
	}

	// Middleware stacks
	withUser := middleware.Stack(authMw.WithUser)
	requireUser := middleware.Stack(authMw.WithUser, authMw.RequireUser)
	requireAdmin := middleware.Stack(authMw.WithUser, authMw.RequireUser, authMw.RequireAdmin)

	// Auth
	mux.Handle("POST /auth/login", rateLimiter.LimitLogin(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /users", requireAdmin(http.HandlerFunc(authHandler.CreateUser)))

	// Bookings. Creation is the public booking form; management is staff only.
	mux.Handle("POST /bookings", withUser(http.HandlerFunc(bookingHandler.Create)))
	mux.Handle("GET /bookings", requireUser(http.HandlerFunc(bookingHandler.List)))
	mux.Handle("GET /bookings/{id}", requireUser(http.HandlerFunc(bookingHandler.Get)))
	mux.Handle("PATCH /bookings/{id}/status", requireUser(http.HandlerFunc(bookingHandler.UpdateStatus)))
	mux.Handle("PATCH /bookings/{id}/mechanic", requireAdmin(http.HandlerFunc(bookingHandler.AssignMechanic)))

	// Reports
	mux.Handle("GET /reports/booking/{id}", requireUser(http.HandlerFunc(reportHandler.Get)))
	mux.Handle("POST /reports/booking/{id}", requireUser(http.HandlerFunc(reportHandler.Save)))
	mux.Handle("PATCH /reports/booking/{id}/submit", requireUser(http.HandlerFunc(reportHandler.Submit)))
	mux.Handle("GET /reports/booking/{id}/view", requireUser(http.HandlerFunc(reportHandler.View)))
	mux.Handle("POST /reports/booking/{id}/photos", requireUser(http.HandlerFunc(reportHandler.UploadPhoto)))
	mux.Handle("DELETE /reports/booking/{id}/photos/{slot}", requireUser(http.HandlerFunc(reportHandler.DeletePhoto)))

	// Outer middleware applied to every request
	root := securityMw.Handler(loggingMw.Handler(metrics.Middleware(mux)))

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if jobWorker != nil {
		jobWorker.Stop()
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage builds the configured storage backend.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case "r2":
		return storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		}, logger)
	default:
		return storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
