package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsense-dev/spendsense/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.SeedDefaults(ctx, "u1"))
	// Re-seeding is a no-op, not a constraint violation.
	require.NoError(t, store.SeedDefaults(ctx, "u1"))

	categories, err := store.Categories(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, categories, len(seedCategories))

	var defaults int
	for _, c := range categories {
		if c.IsDefault {
			defaults++
			assert.Equal(t, "uncategorized", c.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestFindCategoryByName(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.SeedDefaults(ctx, "u1"))

	cat, err := store.FindCategoryByName(ctx, "u1", "GROCERIES")
	require.NoError(t, err)
	require.NotNil(t, cat, "lookup is case-insensitive")
	assert.Equal(t, "groceries", cat.Name)

	cat, err = store.FindCategoryByName(ctx, "u1", "no such thing")
	require.NoError(t, err)
	assert.Nil(t, cat, "a miss is not an error")

	cat, err = store.FindCategoryByName(ctx, "other-user", "groceries")
	require.NoError(t, err)
	assert.Nil(t, cat, "categories are per-user")
}

func TestActiveRules(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.SeedDefaults(ctx, "u1"))

	cat, err := store.FindCategoryByName(ctx, "u1", "dining")
	require.NoError(t, err)
	require.NotNil(t, cat)

	rules := []model.Rule{
		{ID: "r-low", UserID: "u1", MatchType: model.MatchKeyword, Pattern: "pizza", Priority: 1, IsActive: true, CategoryID: cat.ID},
		{ID: "r-high", UserID: "u1", MatchType: model.MatchMerchant, Pattern: "dominos", Priority: 9, IsActive: true, CategoryID: cat.ID},
		{ID: "r-off", UserID: "u1", MatchType: model.MatchKeyword, Pattern: "sushi", Priority: 5, IsActive: false, CategoryID: cat.ID},
		{ID: "r-tie-a", UserID: "u1", MatchType: model.MatchKeyword, Pattern: "taco", Priority: 5, IsActive: true, CategoryID: cat.ID},
		{ID: "r-tie-b", UserID: "u1", MatchType: model.MatchKeyword, Pattern: "burrito", Priority: 5, IsActive: true, CategoryID: cat.ID},
	}
	for i := range rules {
		require.NoError(t, store.InsertRule(ctx, &rules[i]))
	}

	active, err := store.ActiveRules(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, active, 4)

	ids := make([]string, len(active))
	for i, r := range active {
		ids[i] = r.ID
		assert.True(t, r.IsActive)
	}
	assert.Equal(t, []string{"r-high", "r-tie-a", "r-tie-b", "r-low"}, ids,
		"priority descending, ties in insertion order")
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.SeedDefaults(ctx, "u1"))

	account := model.Account{
		ID: "a1", UserID: "u1", Name: "Checking",
		Type: model.AccountChecking, Balance: dec("120.50"),
		Currency: "USD", IsActive: true,
	}
	require.NoError(t, store.InsertAccount(ctx, &account))

	cat, err := store.FindCategoryByName(ctx, "u1", "groceries")
	require.NoError(t, err)
	require.NotNil(t, cat)

	txns := []model.Transaction{
		{
			ID: "t1", UserID: "u1", AccountID: "a1",
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Description: "WHOLE FOODS MARKET", Merchant: "WHOLE FOODS MARKET",
			Amount: dec("-82.19"), Currency: "USD", CategoryID: cat.ID,
			Tags: []string{"food", "weekly"}, ExternalID: "ext-1",
		},
		{
			ID: "t2", UserID: "u1", AccountID: "a1",
			Date:        time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			Description: "MYSTERY VENDOR", Merchant: "MYSTERY VENDOR",
			Amount: dec("-5.00"), Currency: "USD",
		},
	}
	for i := range txns {
		require.NoError(t, store.InsertTransaction(ctx, &txns[i]))
	}

	got, err := store.Transactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "t1", got[0].ID)
	assert.True(t, txns[0].Date.Equal(got[0].Date))
	assert.True(t, dec("-82.19").Equal(got[0].Amount), "got %s", got[0].Amount)
	assert.Equal(t, cat.ID, got[0].CategoryID)
	assert.Equal(t, []string{"food", "weekly"}, got[0].Tags)
	assert.Equal(t, "ext-1", got[0].ExternalID)

	assert.Empty(t, got[1].CategoryID, "NULL category reads back empty")
	assert.Nil(t, got[1].Tags)

	accounts, err := store.Accounts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, dec("120.50").Equal(accounts[0].Balance))
	assert.Equal(t, model.AccountChecking, accounts[0].Type)
}

func TestInsertTransactionEnforcesAccount(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	tx := model.Transaction{
		ID: "t1", UserID: "u1", AccountID: "no-such-account",
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "X", Amount: dec("-1"), Currency: "USD",
	}
	assert.Error(t, store.InsertTransaction(ctx, &tx))
}
