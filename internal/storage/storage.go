// Package storage defines the persistence collaborator consumed by the
// import and categorization core. Implementations are constructed explicitly
// and passed in, so tests can substitute doubles.
package storage

import (
	"context"

	"github.com/spendsense-dev/spendsense/internal/model"
)

// Store is everything the core reads from and writes to persistence.
type Store interface {
	// ActiveRules returns a user's active rules ordered by priority
	// descending. Inactive rules are filtered here, at the query boundary.
	ActiveRules(ctx context.Context, userID string) ([]model.Rule, error)

	// Categories returns all of a user's categories.
	Categories(ctx context.Context, userID string) ([]model.Category, error)

	// FindCategoryByName resolves a category name case-insensitively.
	// Returns nil (not an error) when no category has that name.
	FindCategoryByName(ctx context.Context, userID, name string) (*model.Category, error)

	// Accounts returns all of a user's accounts.
	Accounts(ctx context.Context, userID string) ([]model.Account, error)

	// Transactions returns a user's stored transactions for duplicate
	// comparison. Id, date, amount, merchant, and externalId suffice.
	Transactions(ctx context.Context, userID string) ([]model.Transaction, error)

	// InsertTransaction persists one normalized transaction.
	InsertTransaction(ctx context.Context, tx *model.Transaction) error
}
