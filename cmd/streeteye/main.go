package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pointbreak45/Street-Eye/internal/api"
	"github.com/pointbreak45/Street-Eye/internal/config"
	"github.com/pointbreak45/Street-Eye/internal/logging"
	"github.com/pointbreak45/Street-Eye/internal/services/analysis"
	"github.com/pointbreak45/Street-Eye/internal/services/messaging"
	"github.com/pointbreak45/Street-Eye/internal/store"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.Load()

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Optionally tee logs into the embedded Logdy web UI
	if cfg.LogdyEnabled {
		if w, url, err := logging.StartLogdy(cfg); err != nil {
			log.Warn().Err(err).Msg("Failed to start Logdy, continuing without it")
		} else {
			console := zerolog.ConsoleWriter{Out: os.Stderr}
			log.Logger = log.Output(io.MultiWriter(console, w))
			log.Info().Str("url", url).Msg("Logs mirrored to Logdy")
		}
	}

	log.Info().
		Str("worker_id", cfg.WorkerID).
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Msg("Starting Street-Eye")

	// Open the result store
	st, err := store.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("Failed to open store")
	}
	defer st.Close()

	// Connect NATS when enabled; analyses run fine without it
	var publisher messaging.Publisher
	var natsService *messaging.Service
	if cfg.NatsEnabled {
		natsService, err = messaging.NewService(cfg)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.NatsURL).Msg("NATS unavailable, events will not be published")
		} else {
			publisher = natsService
		}
	}

	svc := analysis.NewService(cfg, st, publisher)

	// Create and start server
	server := api.NewServer(cfg, svc)
	if err := server.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up server")
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := svc.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to stop analysis runs")
	}
	if natsService != nil {
		if err := natsService.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to drain NATS connection")
		}
	}

	log.Info().Msg("Shutdown complete")
}
