package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sirupsen/logrus"

	config "github.com/relaypoint/mailgate/configs"
	"github.com/relaypoint/mailgate/internal/application/services"
	"github.com/relaypoint/mailgate/internal/core/ports"
	"github.com/relaypoint/mailgate/internal/infrastructure/health"
	"github.com/relaypoint/mailgate/internal/infrastructure/httpserver"
	"github.com/relaypoint/mailgate/internal/infrastructure/provider"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting mailgate...")

	// Initialize the email provider selected by configuration
	var sender ports.EmailSender
	switch cfg.Email.Provider {
	case config.ProviderSES:
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			logger.Fatal("Failed to load AWS configuration:", err)
		}
		sender = provider.NewSESSender(sesv2.NewFromConfig(awsCfg))
	case config.ProviderSendGrid:
		sender = provider.NewSendGridSender(sendgrid.NewSendClient(cfg.Email.SendGridAPIKey))
	default:
		logger.Fatalf("Unknown email provider %q", cfg.Email.Provider)
	}

	logger.Infof("Email provider initialized: %s", sender.Name())

	// Wire the send pipeline
	emailService := services.NewEmailService(sender, &services.EmailServiceConfig{
		VerifiedIdentity: cfg.Email.VerifiedIdentity,
		APIKey:           cfg.Email.APIKey,
		Subject:          cfg.Email.Subject,
	}, logger)

	hcSlice := []ports.HealthChecker{health.NewSenderHealthChecker(sender)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		EmailService:   emailService,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
