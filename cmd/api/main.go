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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/udmdigital/lead-crm-api/internal/auth"
	"github.com/udmdigital/lead-crm-api/internal/config"
	"github.com/udmdigital/lead-crm-api/internal/database"
	"github.com/udmdigital/lead-crm-api/internal/handler"
	"github.com/udmdigital/lead-crm-api/internal/mail"
	middlewarepkg "github.com/udmdigital/lead-crm-api/internal/middleware"
	"github.com/udmdigital/lead-crm-api/internal/repository"
	"github.com/udmdigital/lead-crm-api/internal/router"
	"github.com/udmdigital/lead-crm-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	leadsRepo := repository.NewPGXLeadsRepository(pool)
	conversationsRepo := repository.NewPGXConversationsRepository(pool)
	attachmentsRepo := repository.NewPGXAttachmentsRepository(pool)

	var mailer service.ResetMailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewEmailSender(cfg.SMTP)
	}

	authService := service.NewAuthService(usersRepo, jwtManager, mailer, logger)
	leadService := service.NewLeadService(leadsRepo, conversationsRepo, logger)
	conversationService := service.NewConversationService(conversationsRepo, leadsRepo)
	attachmentService := service.NewAttachmentService(attachmentsRepo, leadsRepo)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Leads:         handler.NewLeadsHandler(leadService),
		Conversations: handler.NewConversationsHandler(conversationService),
		Attachments:   handler.NewAttachmentsHandler(attachmentService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(middlewarepkg.Metrics())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
