// Package worker runs the background jobs: CSV snapshots on change events
// and on a daily schedule, plus the optional spreadsheet mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finanza/internal/amqp"
	"finanza/internal/codec"
	"finanza/internal/core"
	"finanza/internal/store"
)

// ListMirror pushes the full transaction list to an external copy. The
// spreadsheet mirror satisfies this; a nil mirror disables the push.
type ListMirror interface {
	Replace(ctx context.Context, txs []core.Transaction) error
}

// BackupWorker writes CSV snapshots of the transaction list into a local
// directory and optionally mirrors the list to a spreadsheet.
type BackupWorker struct {
	transactions store.TransactionStore
	mirror       ListMirror
	backupDir    string
}

func NewBackupWorker(transactions store.TransactionStore, mirror ListMirror, backupDir string) *BackupWorker {
	return &BackupWorker{
		transactions: transactions,
		mirror:       mirror,
		backupDir:    backupDir,
	}
}

// HandleChangeMessage processes one change event: a fresh snapshot plus the
// mirror push. Returning an error requeues the message.
func (w *BackupWorker) HandleChangeMessage(ctx context.Context, msg *amqp.TransactionsChangedMessage) error {
	slog.InfoContext(ctx, "Processing change message",
		"reason", msg.Reason,
		"count", msg.Count)

	txs, err := w.transactions.Get(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	if err := w.writeSnapshot(ctx, txs, time.Now()); err != nil {
		return err
	}

	if w.mirror != nil {
		if err := w.mirror.Replace(ctx, txs); err != nil {
			return fmt.Errorf("mirror transactions: %w", err)
		}
	}

	return nil
}

// RunScheduled takes the daily snapshot. Cron triggers this independently of
// change events so a quiet day still produces a file.
func (w *BackupWorker) RunScheduled(ctx context.Context) error {
	txs, err := w.transactions.Get(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	return w.writeSnapshot(ctx, txs, time.Now())
}

// writeSnapshot renders the list as CSV into the backup directory. One file
// per day; a later snapshot the same day overwrites the earlier one.
func (w *BackupWorker) writeSnapshot(ctx context.Context, txs []core.Transaction, now time.Time) error {
	if err := os.MkdirAll(w.backupDir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(w.backupDir, codec.ExportFilename(now))
	if err := os.WriteFile(path, []byte(codec.Encode(txs)), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot written",
		"path", path,
		"transactions", len(txs))
	return nil
}
