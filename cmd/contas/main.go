package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"contas/internal/advice"
	"contas/internal/amqp"
	"contas/internal/cards"
	"contas/internal/config"
	apphttp "contas/internal/http"
	"contas/internal/ledger"
	"contas/internal/log"
	"contas/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Card registry: built-in closing days, optionally overridden from TOML.
	registry := cards.DefaultRegistry()
	if cfg.CardsConfigPath != "" {
		var err error
		registry, err = cards.LoadFile(cfg.CardsConfigPath)
		if err != nil {
			logger.Error("Failed to load cards config", "error", err, "path", cfg.CardsConfigPath)
			os.Exit(1)
		}
		logger.Info("Loaded card registry", "path", cfg.CardsConfigPath, "cards", len(registry.Cards()))
	}

	// Snapshot storage backend.
	var snapshots storage.SnapshotStore
	switch cfg.DataBackend {
	case "sqlite":
		sqliteStore, err := storage.NewSQLiteStore(cfg.SQLiteDBPath, cfg.SnapshotName)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		snapshots = sqliteStore
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath, "snapshot", cfg.SnapshotName)
	default:
		snapshots = storage.NewMemoryStore()
		logger.Info("Initialized memory backend")
	}

	store := ledger.NewStore(ledger.UUIDGenerator{}, cards.NewEngine(registry), snapshots)

	// Optional AMQP event publishing for the export worker.
	if cfg.AMQPEnabled() {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		store = store.WithEvents(amqpClient)
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	if err := store.Load(context.Background()); err != nil {
		logger.Error("Failed to load ledger snapshot", "error", err)
		os.Exit(1)
	}

	// Optional OpenAI-backed monthly analysis.
	var advisor *advice.Advisor
	if cfg.AdviceEnabled() {
		completer, err := advice.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Error("Failed to initialize OpenAI client", "error", err)
			os.Exit(1)
		}
		advisor = advice.NewAdvisor(completer)
		logger.Info("Monthly analysis enabled")
	} else {
		logger.Info("Monthly analysis disabled - no OPENAI_API_KEY provided")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := apphttp.NewServer(":"+cfg.Port, store, advisor, logger, reg)

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

	logger.Info("Starting contas server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
