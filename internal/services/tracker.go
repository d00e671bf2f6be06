// Package services orchestrates the stores, the change-event publisher and
// the CSV codec behind the HTTP surface.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finanza/internal/amqp"
	"finanza/internal/codec"
	"finanza/internal/core"
	"finanza/internal/store"
)

// ChangePublisher emits a notification after the transaction list changed.
// A nil publisher disables notifications.
type ChangePublisher interface {
	PublishTransactionsChanged(ctx context.Context, reason string, count int) error
}

// TrackerService owns all transaction writes. Every write lands in the store
// first; the change event is published afterwards and never fails the
// request.
type TrackerService struct {
	transactions store.TransactionStore
	settings     store.SettingsStore
	publisher    ChangePublisher
}

func NewTrackerService(transactions store.TransactionStore, settings store.SettingsStore, publisher ChangePublisher) *TrackerService {
	return &TrackerService{
		transactions: transactions,
		settings:     settings,
		publisher:    publisher,
	}
}

// List returns the full transaction list, newest first.
func (s *TrackerService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.transactions.Get(ctx)
}

// Add validates and stores a new transaction.
func (s *TrackerService) Add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = core.NewID()
	}
	if t.Date == "" {
		t.Date = core.Today(time.Now())
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.transactions.Append(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.publishChange(ctx, amqp.ReasonCreated, 1)
	return t, nil
}

// Delete removes a transaction by id. Unknown ids are a no-op.
func (s *TrackerService) Delete(ctx context.Context, id string) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publishChange(ctx, amqp.ReasonDeleted, 1)
	return nil
}

// Export renders the full list as CSV and returns the suggested filename.
func (s *TrackerService) Export(ctx context.Context, now time.Time) (filename, content string, err error) {
	txs, err := s.transactions.Get(ctx)
	if err != nil {
		return "", "", fmt.Errorf("load transactions: %w", err)
	}
	return codec.ExportFilename(now), codec.Encode(txs), nil
}

// Import decodes CSV text and replaces the entire list with the result. The
// swap is all-or-nothing: a decode error leaves the current list untouched.
func (s *TrackerService) Import(ctx context.Context, text string, now time.Time) (int, error) {
	txs, err := codec.Decode(text, now)
	if err != nil {
		return 0, err
	}

	if err := s.transactions.Replace(ctx, txs); err != nil {
		return 0, fmt.Errorf("replace transactions: %w", err)
	}

	s.publishChange(ctx, amqp.ReasonImported, len(txs))
	return len(txs), nil
}

// RangeReport is the resolved view of one range selector: the window, the
// transactions inside it and their summary, plus the previous-window summary
// for comparative ranges.
type RangeReport struct {
	Range          core.RangeSelector `json:"range"`
	Window         core.Window        `json:"window"`
	PreviousWindow *core.Window       `json:"previousWindow,omitempty"`
	Transactions   []core.Transaction `json:"transactions"`
	Summary        core.Summary       `json:"summary"`
	Previous       *core.Summary      `json:"previous,omitempty"`
}

// Resolve filters the list down to the selected range and computes the
// summary for it, plus the previous-window summary when the range has one.
func (s *TrackerService) Resolve(ctx context.Context, sel core.RangeSelector, now time.Time, custom core.CustomBounds) (RangeReport, error) {
	txs, err := s.transactions.Get(ctx)
	if err != nil {
		return RangeReport{}, fmt.Errorf("load transactions: %w", err)
	}

	resolved := core.Resolve(sel, now, txs, custom)
	report := RangeReport{
		Range:        sel,
		Window:       resolved.Current,
		Transactions: core.Filter(txs, resolved.Current),
	}
	report.Summary = core.Summarize(report.Transactions)

	if resolved.Previous != nil {
		prev := core.Summarize(core.Filter(txs, *resolved.Previous))
		report.Previous = &prev
		report.PreviousWindow = resolved.Previous
	}

	return report, nil
}

// Profile returns the stored single-user profile.
func (s *TrackerService) Profile(ctx context.Context) (name, avatar string, err error) {
	name, err = s.settings.GetSetting(ctx, store.SettingUserName)
	if err != nil {
		return "", "", fmt.Errorf("load profile name: %w", err)
	}
	avatar, err = s.settings.GetSetting(ctx, store.SettingUserAvatar)
	if err != nil {
		return "", "", fmt.Errorf("load profile avatar: %w", err)
	}
	return name, avatar, nil
}

func (s *TrackerService) publishChange(ctx context.Context, reason string, count int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionsChanged(ctx, reason, count); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"reason", reason, "error", err)
	}
}
