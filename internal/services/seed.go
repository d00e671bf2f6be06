package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"finanza/internal/amqp"
	"finanza/internal/core"
	"finanza/internal/store"
)

// seedMonths is how many months of history onboarding generates, current
// month included.
const seedMonths = 3

// Seeder turns the onboarding answers into a stored profile and a synthetic
// transaction history built from the recurring items.
type Seeder struct {
	transactions store.TransactionStore
	settings     store.SettingsStore
	publisher    ChangePublisher
}

func NewSeeder(transactions store.TransactionStore, settings store.SettingsStore, publisher ChangePublisher) *Seeder {
	return &Seeder{
		transactions: transactions,
		settings:     settings,
		publisher:    publisher,
	}
}

// Seed stores the profile and replaces the transaction list with generated
// history. Items without a day of month get a random day in 1..20; chosen
// days past the end of a month are clamped to the month end.
func (s *Seeder) Seed(ctx context.Context, name, avatar string, items []core.RecurringItem, now time.Time) ([]core.Transaction, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}

	if err := s.settings.SetSetting(ctx, store.SettingUserName, name); err != nil {
		return nil, fmt.Errorf("store profile name: %w", err)
	}
	if avatar != "" {
		if err := s.settings.SetSetting(ctx, store.SettingUserAvatar, avatar); err != nil {
			return nil, fmt.Errorf("store profile avatar: %w", err)
		}
	}

	txs := GenerateHistory(items, now)
	if err := s.transactions.Replace(ctx, txs); err != nil {
		return nil, fmt.Errorf("store seeded history: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionsChanged(ctx, amqp.ReasonSeeded, len(txs)); err != nil {
			slog.ErrorContext(ctx, "Failed to publish seed message", "error", err)
		}
	}

	return txs, nil
}

// GenerateHistory expands the recurring items over the current month and the
// two before it, newest first.
func GenerateHistory(items []core.RecurringItem, now time.Time) []core.Transaction {
	txs := []core.Transaction{}

	for back := 0; back < seedMonths; back++ {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -back, 0)

		for _, item := range items {
			day := item.DayOfMonth
			if day <= 0 {
				day = rand.Intn(20) + 1
			}
			date := core.ClampDay(anchor.Year(), anchor.Month(), day)
			txs = append(txs, core.Transaction{
				ID:          core.NewID(),
				Description: item.Label,
				Amount:      item.DefaultAmount,
				Type:        item.Type,
				Category:    item.Category,
				Date:        date.Format(core.DateLayout),
			})
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})

	return txs
}
