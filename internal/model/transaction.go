package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedTransaction is one normalized CSV row, produced by the parser and
// consumed by the import pipeline. Immutable after creation.
type ParsedTransaction struct {
	Date        time.Time
	Description string
	Merchant    string          // defaults to Description when the file has no merchant column
	Amount      decimal.Decimal // negative = expense, positive = income
	Currency    string
	Account     string // source-file account label, resolved to an Account later
	Category    string
	Tags        []string
	ExternalID  string
}

// Transaction is a stored transaction row.
type Transaction struct {
	ID          string
	UserID      string
	AccountID   string
	Date        time.Time
	Description string
	Merchant    string
	Amount      decimal.Decimal
	Currency    string
	CategoryID  string // empty = uncategorized
	Tags        []string
	ExternalID  string
	IsTransfer  bool
}
