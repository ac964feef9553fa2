package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/trackr/api/internal/api"
	"github.com/trackr/api/internal/api/handlers"
	"github.com/trackr/api/internal/api/validators"
	"github.com/trackr/api/internal/auth"
	"github.com/trackr/api/internal/repository"
	"github.com/trackr/api/internal/services"
	"github.com/trackr/api/pkg/config"
	"github.com/trackr/api/pkg/database"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"

	_ "github.com/trackr/api/docs"
)

// @title           Trackr API
// @version         1.0
// @description     Projects, customers, users and resource estimates.

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting Trackr API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if sqlDB, err := db.DB(); err == nil {
		reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, "trackr"))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(cfg, db, reg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newRouter(cfg *config.Config, db *gorm.DB, reg *prometheus.Registry) http.Handler {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	// Services
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTTTL)
	authSvc := services.NewAuthService(userRepo, tokens)
	userSvc := services.NewUserService(userRepo)
	customerSvc := services.NewCustomerService(customerRepo)
	projectSvc := services.NewProjectService(projectRepo, customerRepo)
	resourceSvc := services.NewResourceService(resourceRepo, projectRepo)
	reportSvc := services.NewReportService(projectRepo)

	// Handlers
	v := validators.New()
	return api.NewRouter(api.Dependencies{
		Principals: authSvc,
		CORSOrigin: cfg.CORSOrigin,
		Registry:   reg,
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
		AuthHandler:      handlers.NewAuthHandler(authSvc, v),
		UsersHandler:     handlers.NewUsersHandler(userSvc, v),
		ProjectsHandler:  handlers.NewProjectsHandler(projectSvc, reportSvc, v, cfg.ReportYear),
		ResourcesHandler: handlers.NewResourcesHandler(resourceSvc, v),
		CustomersHandler: handlers.NewCustomersHandler(customerSvc, v),
	})
}
