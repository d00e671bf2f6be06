package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanza/internal/core"
	"finanza/internal/store"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "finanza.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryEmpty(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	txs, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestRepositoryAppendOrdersNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := core.NewTransaction("Groceries", 42.50, core.Expense, "Food", "2024-03-01")
	second := core.NewTransaction("Salary", 2000, core.Income, "Salary", "2024-03-02")

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	txs, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, second.ID, txs[0].ID)
	assert.Equal(t, first.ID, txs[1].ID)
	assert.Equal(t, core.Income, txs[0].Type)
	assert.Equal(t, 42.50, txs[1].Amount)
}

func TestRepositoryAppendRejectsInvalid(t *testing.T) {
	repo := newTestRepository(t)

	bad := core.NewTransaction("", 10, core.Expense, "Food", "2024-03-01")
	err := repo.Append(context.Background(), bad)
	require.Error(t, err)
}

func TestRepositoryReplacePreservesOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, core.NewTransaction("Old", 5, core.Expense, "Misc", "2024-01-01")))

	imported := []core.Transaction{
		core.NewTransaction("Rent", 800, core.Expense, "Housing", "2024-03-05"),
		core.NewTransaction("Salary", 2000, core.Income, "Salary", "2024-03-01"),
		core.NewTransaction("Dinner", 35, core.Expense, "Food", "2024-02-20"),
	}
	require.NoError(t, repo.Replace(ctx, imported))

	txs, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for i, want := range imported {
		assert.Equal(t, want.ID, txs[i].ID)
	}

	// An append after a replace still lands at the head.
	latest := core.NewTransaction("Coffee", 3, core.Expense, "Food", "2024-03-06")
	require.NoError(t, repo.Append(ctx, latest))

	txs, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 4)
	assert.Equal(t, latest.ID, txs[0].ID)
}

func TestRepositoryDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tx := core.NewTransaction("Groceries", 42.50, core.Expense, "Food", "2024-03-01")
	require.NoError(t, repo.Append(ctx, tx))

	require.NoError(t, repo.Delete(ctx, tx.ID))
	txs, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	// Unknown ids are a no-op.
	require.NoError(t, repo.Delete(ctx, "missing"))
}

func TestRepositorySettings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	value, err := repo.GetSetting(ctx, store.SettingUserName)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, repo.SetSetting(ctx, store.SettingUserName, "Maria"))
	require.NoError(t, repo.SetSetting(ctx, store.SettingUserName, "Marta"))

	value, err = repo.GetSetting(ctx, store.SettingUserName)
	require.NoError(t, err)
	assert.Equal(t, "Marta", value)
}

func TestRepositoryReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finanza.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	tx := core.NewTransaction("Rent", 800, core.Expense, "Housing", "2024-03-05")
	require.NoError(t, repo.Append(ctx, tx))
	require.NoError(t, repo.Close())

	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	txs, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.ID, txs[0].ID)
}
