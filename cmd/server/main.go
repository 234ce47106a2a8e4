package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "renttrack-backend/internal/api/http"
	"renttrack-backend/internal/config"
	"renttrack-backend/internal/logger"
	"renttrack-backend/internal/repository/postgres"
	"renttrack-backend/internal/security"
	"renttrack-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentTrack Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize Services
	guard := service.NewAuthorizationGuard(store.Orgs, store.Memberships)
	auditEmitter := service.NewAuditEmitter(store.AuditLogs)
	clock := service.NewClock()

	emailService := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	authService := service.NewAuthService(store.Users, tokenManager)
	orgService := service.NewOrganizationService(store, store.Orgs, store.Memberships, guard, auditEmitter, store.AuditLogs)
	propertyService := service.NewPropertyService(guard, store.Buildings, store.Units, auditEmitter)
	tenancyService := service.NewTenancyService(guard, store.Tenants, store.Occupancies, store.Units, auditEmitter)
	rentConfigService := service.NewRentConfigService(guard, store.RentConfigs, store.Occupancies, auditEmitter)
	rentPeriodService := service.NewRentPeriodService(guard, store, store.RentConfigs, store.Occupancies, store.RentPeriods, auditEmitter, clock)
	paymentService := service.NewPaymentService(guard, store, store.RentPeriods, store.Payments, auditEmitter, clock, store.Orgs, emailService)

	// Initialize HTTP API
	handler := httpapi.NewHandler(
		authService,
		orgService,
		propertyService,
		tenancyService,
		rentConfigService,
		rentPeriodService,
		paymentService,
	)
	router := httpapi.NewRouter(handler, tokenManager)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
