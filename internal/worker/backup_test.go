package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finanza/internal/amqp"
	"finanza/internal/core"
	"finanza/internal/store/memory"
)

type fakeMirror struct {
	calls int
	got   []core.Transaction
	err   error
}

func (f *fakeMirror) Replace(ctx context.Context, txs []core.Transaction) error {
	f.calls++
	f.got = txs
	return f.err
}

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.NewWith([]core.Transaction{
		{ID: core.NewID(), Description: "Nomina", Amount: 2000, Type: core.Income, Category: "Salario", Date: "2024-02-01"},
		{ID: core.NewID(), Description: "Lunch", Amount: 15, Type: core.Expense, Category: "Food", Date: "2024-02-03"},
	})
}

func TestHandleChangeMessageWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	st := seedStore(t)
	mirror := &fakeMirror{}
	w := NewBackupWorker(st, mirror, dir)

	msg := amqp.NewTransactionsChangedMessage(amqp.ReasonCreated, 2)
	if err := w.HandleChangeMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d snapshot files, want 1", len(entries))
	}

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(content), "fecha,categoria,nombre,cantidad,tipo\n") {
		t.Errorf("snapshot missing header: %q", content)
	}
	if !strings.Contains(string(content), "Nomina") {
		t.Errorf("snapshot missing row: %q", content)
	}

	if mirror.calls != 1 {
		t.Errorf("mirror calls = %d, want 1", mirror.calls)
	}
	if len(mirror.got) != 2 {
		t.Errorf("mirror received %d transactions, want 2", len(mirror.got))
	}
}

func TestHandleChangeMessageMirrorErrorRequeues(t *testing.T) {
	dir := t.TempDir()
	st := seedStore(t)
	mirror := &fakeMirror{err: errors.New("sheet unavailable")}
	w := NewBackupWorker(st, mirror, dir)

	msg := amqp.NewTransactionsChangedMessage(amqp.ReasonImported, 2)
	if err := w.HandleChangeMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error when mirror fails")
	}
}

func TestHandleChangeMessageWithoutMirror(t *testing.T) {
	dir := t.TempDir()
	w := NewBackupWorker(seedStore(t), nil, dir)

	msg := amqp.NewTransactionsChangedMessage(amqp.ReasonDeleted, 1)
	if err := w.HandleChangeMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}
}

func TestRunScheduledOverwritesSameDay(t *testing.T) {
	dir := t.TempDir()
	st := seedStore(t)
	w := NewBackupWorker(st, nil, dir)
	ctx := context.Background()

	if err := w.RunScheduled(ctx); err != nil {
		t.Fatalf("RunScheduled() error = %v", err)
	}
	if err := w.RunScheduled(ctx); err != nil {
		t.Fatalf("RunScheduled() second run error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d snapshot files, want 1", len(entries))
	}
}
