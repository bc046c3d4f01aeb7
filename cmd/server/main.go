package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/delivery-area-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/delivery-area-service/internal/adapter/kafka"
	"github.com/couchcryptid/delivery-area-service/internal/adapter/locality"
	"github.com/couchcryptid/delivery-area-service/internal/config"
	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/couchcryptid/delivery-area-service/internal/observability"
	"github.com/couchcryptid/delivery-area-service/internal/orchestrator"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	area, err := cfg.ServiceArea()
	if err != nil {
		logger.Error("invalid service area", "error", err)
		os.Exit(1)
	}
	logger.Info("service area loaded", "area", area.Describe())

	// Fallback geocoder (feature-flagged via GEOCODER_ENABLED).
	var geocoder domain.Geocoder
	if cfg.GeocoderEnabled {
		geocoder = locality.New(locality.DefaultGazetteer(), logger,
			locality.WithLatency(cfg.GeocoderLatency),
			locality.WithPostcodeFilter(area.IsAcceptedPrefix),
		)
		logger.Info("locality geocoding enabled", "latency", cfg.GeocoderLatency)
	} else {
		logger.Info("locality geocoding disabled")
	}

	orch := orchestrator.New(domain.NewValidator(area), geocoder, logger, metrics)

	// Verdict events (feature-flagged via KAFKA_ENABLED).
	var (
		writer    *kafkaadapter.Writer
		publisher httpadapter.Publisher
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("verdict events enabled", "topic", cfg.KafkaVerdictTopic, "brokers", cfg.KafkaBrokers)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, orch, publisher, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
