package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goption "google.golang.org/api/option"

	"salesdash/internal/amqp"
	"salesdash/internal/backend"
	"salesdash/internal/config"
	apphttp "salesdash/internal/http"
	"salesdash/internal/seed"
	"salesdash/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Record store backend
	store, err := backend.Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize record store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Store.Close()
	logger.Info("Record store initialized", "backend", store.Type.String())

	// Seed source
	var source seed.Source
	switch cfg.SeedSource {
	case "sheets":
		var opts []goption.ClientOption
		if cfg.GoogleCredentialsFile != "" {
			opts = append(opts, goption.WithCredentialsFile(cfg.GoogleCredentialsFile))
		} else if cfg.GoogleCredentialsJSON != "" {
			opts = append(opts, goption.WithCredentialsJSON([]byte(cfg.GoogleCredentialsJSON)))
		}
		source, err = seed.NewSheetsSource(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetRange, opts...)
		if err != nil {
			logger.Error("Failed to initialize sheets seed source", "error", err)
			os.Exit(1)
		}
	default:
		source = seed.NewHTTPSource(&http.Client{Timeout: cfg.SeedTimeout}, cfg.SeedURL)
	}
	logger.Info("Seed source initialized", "source", source.Name())

	// Reseed events are optional; without a broker the loader just skips them
	var events seed.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("AMQP reseed events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	loader := seed.NewLoader(source, store.Store, events)
	dashboard := services.NewDashboard(store.Store, cfg.ReferenceYear)

	srv := apphttp.NewServer(":"+cfg.Port, loader, dashboard)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second // reseed fetches the whole dataset
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting salesdash server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"reference_year", cfg.ReferenceYear)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
