package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"

	"github.com/jackc/pgx/v5/pgxpool"
)

// @title           Job Board Backend API
// @version         1.0
// @description     Multi-tenant job board: company admins manage jobs and applications, candidates apply publicly.
// @host            localhost:3000
// @BasePath        /api
// @securityDefinitions.basic BasicAuth
func main() {
	// 1. Load and validate config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port)
	secLog := security.DefaultLogger()
	defer secLog.Sync() //nolint:errcheck

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, falling back to in-memory rate limiting", "error", err)
		}
	}
	defer redis.Close() //nolint:errcheck

	// 5. Setup resume storage
	store, storageCheck, err := newResumeStore(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to set up resume storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	adminRepo := postgres.NewAdminRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	validate := validation.New()
	guard := usecase.NewGuard()
	authUC := usecase.NewAuthUsecase(adminRepo, cfg.AdminPasswordHash)
	companyUC := usecase.NewCompanyUsecase(adminRepo, companyRepo, guard, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo, guard, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, guard, validate)
	healthUC := usecase.NewHealthUsecase(healthChecks(dbPool, storageCheck))

	// 8. Setup abuse protection
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLog)
	uploadLimiter := security.NewUploadLimiter(cfg.UploadsPerMinute, 0)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		JobUC:          jobUC,
		ApplicationUC:  applicationUC,
		HealthUC:       healthUC,
		LoginGuard:     loginTracker,
		UploadGate:     uploadLimiter,
		ResumeStore:    store,
		SecurityLogger: secLog,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func newResumeStore(ctx context.Context, cfg *config.Config) (storage.ResumeStore, usecase.HealthCheck, error) {
	if cfg.ResumeStorage != "s3" {
		store, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}

	s3cfg := security.NewS3ClientConfig(cfg.S3Provider, cfg.S3AccessKeyID, cfg.S3SecretKey, cfg.S3Region, cfg.S3Bucket, cfg.WasabiEndpoint)
	client, err := security.NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Log.Info("Resume storage on object store", "provider", s3cfg.Provider, "bucket", cfg.S3Bucket)

	check := func(ctx context.Context) error {
		return security.TestS3Connection(ctx, client, cfg.S3Bucket)
	}
	return storage.NewS3Store(client, cfg.S3Bucket), check, nil
}

func healthChecks(db *pgxpool.Pool, storageCheck usecase.HealthCheck) map[string]usecase.HealthCheck {
	checks := map[string]usecase.HealthCheck{
		"database": db.Ping,
	}
	if redis.Client() != nil {
		checks["redis"] = redis.HealthCheck
	}
	if storageCheck != nil {
		checks["storage"] = storageCheck
	}
	return checks
}
