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

	"finanza/internal/amqp"
	"finanza/internal/assistant"
	"finanza/internal/config"
	apphttp "finanza/internal/http"
	"finanza/internal/services"
	"finanza/internal/storage"
	"finanza/internal/store"
	"finanza/internal/store/memory"
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

	// Choose data backend (default: memory)
	var (
		transactions store.TransactionStore
		settings     store.SettingsStore
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		transactions, settings = repo, repo
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		mem := memory.New()
		transactions, settings = mem, mem
		logger.Info("Initialized memory backend")
	}

	// AMQP publisher is optional: without it changes are simply not announced.
	var publisher services.ChangePublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client, change events disabled", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	tracker := services.NewTrackerService(transactions, settings, publisher)
	seeder := services.NewSeeder(transactions, settings, publisher)

	var asst *assistant.Assistant
	if cfg.AssistantEnabled() {
		asst = assistant.New(assistant.Config{
			APIKey:     cfg.AssistantAPIKey,
			BaseURL:    cfg.AssistantBaseURL,
			ChatModel:  cfg.AssistantChatModel,
			FastModel:  cfg.AssistantFastModel,
			ImageModel: cfg.AssistantImageModel,
		})
		logger.Info("Assistant initialized", "chat_model", cfg.AssistantChatModel)
	} else {
		logger.Info("Assistant disabled - no OPENAI_API_KEY provided")
	}

	srv := apphttp.NewServer(cfg, tracker, seeder, asst)

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

	logger.Info("Starting finanza server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
