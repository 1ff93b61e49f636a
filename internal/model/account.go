package model

import "github.com/shopspring/decimal"

// AccountType classifies stored accounts.
type AccountType string

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountCash       AccountType = "CASH"
	AccountInvestment AccountType = "INVESTMENT"
)

// Account is a stored account that imported transactions attach to.
type Account struct {
	ID       string
	UserID   string
	Name     string
	Type     AccountType
	Balance  decimal.Decimal
	Currency string
	IsActive bool
}
