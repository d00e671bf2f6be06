// Package store defines the persistence ports for the tracker. Any key-value
// or document backend satisfies them; failures are collaborator errors, the
// core never sees them.
package store

import (
	"context"

	"finanza/internal/core"
)

// Setting keys for the single-user profile and preferences.
const (
	SettingUserName       = "user_name"
	SettingUserAvatar     = "user_avatar"
	SettingDashboardRange = "dashboard_range"
	SettingLanguage       = "language"
	SettingCurrency       = "currency"
	SettingTheme          = "theme"
)

type (
	// TransactionStore holds the authoritative transaction list.
	TransactionStore interface {
		// Get returns the full transaction list, newest first.
		Get(ctx context.Context) ([]core.Transaction, error)
		// Replace swaps the whole list in a single assignment. Imports go
		// through here so a decoded file lands atomically.
		Replace(ctx context.Context, txs []core.Transaction) error
		// Append adds one transaction.
		Append(ctx context.Context, t core.Transaction) error
		// Delete removes the transaction with the given id. Unknown ids are
		// not an error.
		Delete(ctx context.Context, id string) error
	}

	// SettingsStore persists profile fields and UI preferences.
	SettingsStore interface {
		GetSetting(ctx context.Context, key string) (string, error)
		SetSetting(ctx context.Context, key, value string) error
	}
)
