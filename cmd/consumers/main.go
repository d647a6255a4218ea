package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymhub/internal/config"
	"gymhub/internal/consumers"
	"gymhub/internal/logger"
	"gymhub/internal/messaging"
	"gymhub/internal/metrics"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Log)
	slog.Info("Starting consumers service...")

	if cfg.NATS.URL == "" {
		logger.Fatal("NATS_URL is required for the consumers service")
	}

	// Override NATS client ID for consumers
	cfg.NATS.ClientID = "gymhub-consumers"
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}
	defer natsClient.Close()

	var m *metrics.Metrics
	var metricsSrv *http.Server
	if cfg.MetricsEnabled {
		m = metrics.New()
		metricsSrv = &http.Server{
			Addr:              ":" + cfg.ConsumerMetricsPort,
			Handler:           m.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Create and start consumers
	consumerService := consumers.NewConsumerService(natsClient, consumers.NewHandlers(logger.Get()), m)
	if err := consumerService.Start(); err != nil {
		logger.Fatal("Failed to start consumers", "error", err)
	}

	slog.Info("Consumers service started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down consumers service...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := consumerService.Shutdown(ctx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(ctx)
	}

	slog.Info("Consumers service stopped")
}
