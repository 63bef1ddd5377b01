package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itijobs_backend/database"
	"itijobs_backend/internal/auth"
	"itijobs_backend/internal/config"
	"itijobs_backend/internal/email"
	"itijobs_backend/internal/handlers"
	"itijobs_backend/internal/logger"
	"itijobs_backend/internal/metrics"
	"itijobs_backend/internal/middleware"
	"itijobs_backend/internal/models"
	"itijobs_backend/internal/repositories"
	"itijobs_backend/internal/routes"
	"itijobs_backend/internal/services"
	"itijobs_backend/internal/tracing"
	"itijobs_backend/internal/validator"
	"itijobs_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

const tracerName = "itijobs-admin"

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env == "development")
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Tracing.CollectorHost != "" {
		tp, err := tracing.InitTracing(context.Background(), cfg.Tracing.CollectorHost, cfg.Tracing.ServiceName)
		if err != nil {
			logger.Fatal("Failed to initialize tracing", "error", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("Failed to shutdown tracing", "error", err)
			}
		}()
		logger.Info("Tracing enabled", "collector", cfg.Tracing.CollectorHost)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN, cfg.Tracing.CollectorHost != "")
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	defer database.Close(gormDB)
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Auto migration failed", "error", err)
		}
		logger.Info("Database schema migrated")
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа админка бесполезна
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	notifier := initializeNotifier(cfg)
	serviceContainer := services.NewServiceContainer(notifier, m)
	appHandlers := initializeHandlers(serviceContainer, gormDB)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)

	ginRouter := initializeGinRouter(gormDB, m)
	routes.RegisterRoutes(ginRouter, appHandlers, jwtService, m)

	return ginRouter
}

// initializeNotifier собирает SMTP + circuit breaker, либо mock, если SMTP не настроен
func initializeNotifier(cfg *config.Config) *email.RegistrationMailer {
	templates, err := email.NewDefaultTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	var provider email.Provider
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not configured, emails will only be logged")
		provider = &MockEmailProvider{renderer: templates}
	} else {
		smtp := email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		}, templates)
		if err := smtp.Validate(); err != nil {
			logger.Fatal("Invalid SMTP configuration", "error", err)
		}

		cb := email.NewCircuitBreaker(email.BreakerSettings{
			Name:        "smtp",
			MinRequests: cfg.Notifier.MaxFailures,
			OpenTimeout: cfg.Notifier.OpenTimeout,
		})
		provider = email.NewBreakerProvider(smtp, cb)
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	}

	return email.NewRegistrationMailer(provider)
}

func initializeHandlers(services *services.ServiceContainer, gormDB *gorm.DB) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		UserManagementHandler: handlers.NewUserManagementHandler(baseHandler, services.UserManagementService),
		HealthHandler:         handlers.NewHealthHandler(gormDB),
	}
}

func initializeGinRouter(db *gorm.DB, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.TracingMiddleware(otel.Tracer(tracerName)))
	router.Use(middleware.LoggingMiddleware())
	if m != nil {
		router.Use(m.Middleware())
	}
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()

	return db.Transaction(func(tx *gorm.DB) error {
		existing, err := userRepo.FindByEmail(tx, adminEmail)
		if err == nil {
			if !existing.IsAdmin() {
				logger.Warn("First admin email belongs to a non-admin user", "email", adminEmail, "role", existing.Role)
			} else {
				logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			}
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

		if err := auth.ValidatePassword(adminPassword); err != nil {
			return fmt.Errorf("first admin password rejected: %w", err)
		}

		hashedPassword, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		newAdmin := &models.User{
			Name:         "Administrator",
			Email:        adminEmail,
			PasswordHash: hashedPassword,
			Role:         models.UserRoleAdmin,
			IsActive:     true,
		}
		if err := userRepo.Create(tx, newAdmin); err != nil {
			return fmt.Errorf("failed to create admin user in database: %w", err)
		}

		logger.Info("Successfully created first admin user", "email", adminEmail)
		return nil
	})
}
