// Package sqlite implements the storage collaborator on a local SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/spendsense-dev/spendsense/internal/model"
)

const dateFormat = "2006-01-02"

// Store is a SQLite-backed storage.Store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema is
// current.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("reading schema version: %w", err)
	case version > schemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported %d", version, schemaVersion)
	}
	return nil
}

// SeedDefaults creates the default category set for a user if the user has
// no categories yet.
func (s *Store) SeedDefaults(ctx context.Context, userID string) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories WHERE user_id = ?", userID).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range seedCategories {
		cat := model.Category{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      c.name,
			Type:      model.CategoryType(c.ctype),
			IsDefault: c.deflt,
		}
		if err := s.InsertCategory(ctx, &cat); err != nil {
			return fmt.Errorf("seeding category %q: %w", c.name, err)
		}
	}
	return nil
}

// ActiveRules returns a user's active rules ordered by priority descending.
// Ties keep insertion order.
func (s *Store) ActiveRules(ctx context.Context, userID string) ([]model.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, match_type, pattern, priority, category_id
		FROM rules
		WHERE user_id = ? AND is_active = 1
		ORDER BY priority DESC, rowid ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	var rules []model.Rule
	for rows.Next() {
		r := model.Rule{IsActive: true}
		var matchType string
		if err := rows.Scan(&r.ID, &r.UserID, &matchType, &r.Pattern, &r.Priority, &r.CategoryID); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		r.MatchType = model.MatchType(matchType)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// Categories returns all of a user's categories.
func (s *Store) Categories(ctx context.Context, userID string) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, is_default
		FROM categories
		WHERE user_id = ?
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var ctype string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &ctype, &c.IsDefault); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Type = model.CategoryType(ctype)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindCategoryByName resolves a category name case-insensitively, or nil on
// a miss.
func (s *Store) FindCategoryByName(ctx context.Context, userID, name string) (*model.Category, error) {
	var c model.Category
	var ctype string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, is_default
		FROM categories
		WHERE user_id = ? AND name = ? COLLATE NOCASE
		LIMIT 1
	`, userID, name).Scan(&c.ID, &c.UserID, &c.Name, &ctype, &c.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying category %q: %w", name, err)
	}
	c.Type = model.CategoryType(ctype)
	return &c, nil
}

// Accounts returns all of a user's accounts.
func (s *Store) Accounts(ctx context.Context, userID string) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, balance, currency, is_active
		FROM accounts
		WHERE user_id = ?
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var atype, balance string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &atype, &balance, &a.Currency, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Type = model.AccountType(atype)
		if a.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parsing balance %q: %w", balance, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Transactions returns a user's stored transactions, oldest insert first.
func (s *Store) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, account_id, date, description, merchant, amount,
		       currency, category_id, tags, external_id, is_transfer
		FROM transactions
		WHERE user_id = ?
		ORDER BY rowid ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, tx)
	}
	return txns, rows.Err()
}

// InsertTransaction persists one normalized transaction.
func (s *Store) InsertTransaction(ctx context.Context, tx *model.Transaction) error {
	var categoryID sql.NullString
	if tx.CategoryID != "" {
		categoryID = sql.NullString{String: tx.CategoryID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, account_id, date, description,
		                          merchant, amount, currency, category_id,
		                          tags, external_id, is_transfer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		tx.ID, tx.UserID, tx.AccountID, tx.Date.Format(dateFormat),
		tx.Description, tx.Merchant, tx.Amount.String(), tx.Currency,
		categoryID, strings.Join(tx.Tags, ";"), tx.ExternalID, tx.IsTransfer,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// InsertAccount persists one account.
func (s *Store) InsertAccount(ctx context.Context, a *model.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, type, balance, currency, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Name, string(a.Type), a.Balance.String(), a.Currency, a.IsActive)
	if err != nil {
		return fmt.Errorf("inserting account %q: %w", a.Name, err)
	}
	return nil
}

// InsertCategory persists one category.
func (s *Store) InsertCategory(ctx context.Context, c *model.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, type, is_default)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.Name, string(c.Type), c.IsDefault)
	if err != nil {
		return fmt.Errorf("inserting category %q: %w", c.Name, err)
	}
	return nil
}

// InsertRule persists one rule.
func (s *Store) InsertRule(ctx context.Context, r *model.Rule) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rules (id, user_id, match_type, pattern, priority, is_active, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.UserID, string(r.MatchType), r.Pattern, r.Priority, r.IsActive, r.CategoryID)
	if err != nil {
		return fmt.Errorf("inserting rule %q: %w", r.Pattern, err)
	}
	return nil
}

// rowScanner lets scanTransaction work for both Query and QueryRow results.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (model.Transaction, error) {
	var tx model.Transaction
	var date, amount, tags string
	var categoryID sql.NullString

	err := r.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &date, &tx.Description,
		&tx.Merchant, &amount, &tx.Currency, &categoryID, &tags,
		&tx.ExternalID, &tx.IsTransfer)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("scanning transaction: %w", err)
	}

	if tx.Date, err = parseDate(date); err != nil {
		return model.Transaction{}, err
	}
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	tx.CategoryID = categoryID.String
	if tags != "" {
		tx.Tags = strings.Split(tags, ";")
	}
	return tx, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
