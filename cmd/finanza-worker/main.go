package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"finanza/internal/amqp"
	"finanza/internal/config"
	applog "finanza/internal/log"
	"finanza/internal/sheets"
	"finanza/internal/storage"
	"finanza/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	fields := applog.NewFields().
		WithComponent(applog.ComponentWorker).
		WithOperation(applog.OpStartup)
	logger.Info("Starting finanza-worker", fields.ToSlice()...)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// The worker reads snapshots straight from the database.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Spreadsheet mirror is optional.
	var mirror worker.ListMirror
	if cfg.GoogleSpreadsheetID != "" {
		m, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets mirror", "error", err)
			os.Exit(1)
		}
		mirror = m
		logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets mirror disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	backup := worker.NewBackupWorker(repo, mirror, cfg.BackupDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Consume change events published by the API server.
	g.Go(func() error {
		err := amqpClient.ConsumeTransactionsChanged(ctx, func(msg *amqp.TransactionsChangedMessage) error {
			return backup.HandleChangeMessage(ctx, msg)
		})
		if err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	// Daily snapshot so a quiet day still produces a backup file.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.BackupCron, func() {
		if err := backup.RunScheduled(ctx); err != nil {
			logger.Error("Scheduled backup failed", "error", err)
		}
	}); err != nil {
		logger.Error("Invalid backup cron expression", "error", err, "cron", cfg.BackupCron)
		os.Exit(1)
	}
	scheduler.Start()

	g.Go(func() error {
		<-ctx.Done()
		<-scheduler.Stop().Done()
		return nil
	})

	logger.Info("Worker running",
		"queue", cfg.AMQPQueue,
		"backup_dir", cfg.BackupDir,
		"backup_cron", cfg.BackupCron)

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
