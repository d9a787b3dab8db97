package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sefazor/tournest-backend/internal/config"
	"github.com/sefazor/tournest-backend/internal/handler"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/internal/router"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/database"
	"github.com/sefazor/tournest-backend/pkg/email"
	jwtPkg "github.com/sefazor/tournest-backend/pkg/jwt"
	"github.com/sefazor/tournest-backend/pkg/logger"
	"github.com/sefazor/tournest-backend/pkg/payment"
	"github.com/sefazor/tournest-backend/pkg/qrcode"
	"github.com/sefazor/tournest-backend/pkg/storage"
	"github.com/sefazor/tournest-backend/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.JWT.Secret == "" {
		zlog.Fatal("JWT_SECRET is not set")
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail); err != nil {
		zlog.Fatal("Failed to seed admin", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	storyRepo := repository.NewStoryRepository(db)

	// Storage is optional; without a bucket image uploads answer 503
	var objectStore storage.StorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3Storage(context.Background(), cfg.Storage, zlog)
		if err != nil {
			zlog.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStore = s3Storage
	} else {
		zlog.Warn("object storage not configured, story image uploads disabled")
	}

	emailService := email.NewEmailService(cfg.Email, zlog)
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.Currency)
	qrService := qrcode.NewQRService(cfg.QRBaseURL)
	jwtManager := jwtPkg.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	packageService := service.NewPackageService(packageRepo)
	applicationService := service.NewApplicationService(applicationRepo, userRepo, emailService, zlog)
	bookingService := service.NewBookingService(bookingRepo, packageRepo, userRepo, emailService, qrService, zlog)
	paymentService := service.NewPaymentService(stripeService, paymentRepo, bookingRepo, zlog)
	storyService := service.NewStoryService(storyRepo, userRepo, objectStore, zlog)
	statsService := service.NewStatsService(userRepo, packageRepo, applicationRepo, bookingRepo, paymentRepo, storyRepo)

	validator := utils.NewValidator()

	app := router.NewApp(cfg, zlog)
	router.Setup(app, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, validator),
		User:        handler.NewUserHandler(userService, validator),
		Package:     handler.NewPackageHandler(packageService, validator),
		Application: handler.NewApplicationHandler(applicationService, validator),
		Booking:     handler.NewBookingHandler(bookingService, validator),
		Payment:     handler.NewPaymentHandler(paymentService, validator),
		Story:       handler.NewStoryHandler(storyService, validator),
		Stats:       handler.NewStatsHandler(statsService),
	}, jwtManager)

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
