package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/taffe/snackindex/internal/collector"
	"github.com/taffe/snackindex/internal/db"
	"github.com/taffe/snackindex/pkg/config"
	"github.com/taffe/snackindex/pkg/logging"
	"github.com/taffe/snackindex/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Snack Index Collector")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the database
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Cancel the run on interrupt so a partial cycle still flushes cleanly
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logger.Info("Received signal, stopping collection", zap.String("signal", sig.String()))
		cancel()
	}()

	pipeline := collector.NewPipeline(
		collector.NewStore(database),
		collector.NewTrendsClient(),
		buildRedditSource(&cfg.Collector, logger),
		buildNewsSource(&cfg.Collector, logger),
		buildQuoteSource(&cfg.Collector, logger),
	)

	if err := pipeline.Run(ctx); err != nil {
		logger.Fatal("Collection cycle failed", zap.Error(err))
	}

	logger.Info("Collector exited")
}

// Missing credentials disable a source rather than aborting the run

func buildRedditSource(cfg *config.CollectorConfig, logger *zap.Logger) collector.MentionSource {
	client, err := collector.NewRedditClient(cfg)
	if err != nil {
		logger.Warn("Reddit collection disabled", zap.Error(err))
		return nil
	}
	return client
}

func buildNewsSource(cfg *config.CollectorConfig, logger *zap.Logger) collector.MentionSource {
	client, err := collector.NewNewsClient(cfg.NewsAPIKey, cfg.SearchLimit)
	if err != nil {
		logger.Warn("News collection disabled", zap.Error(err))
		return nil
	}
	return client
}

func buildQuoteSource(cfg *config.CollectorConfig, logger *zap.Logger) collector.QuoteSource {
	client, err := collector.NewFinnhubClient(cfg.FinnhubAPIKey)
	if err != nil {
		logger.Warn("Stock quotes disabled", zap.Error(err))
		return nil
	}
	return client
}
