package csvparse

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// KeywordSets drive the sign-reconciliation heuristic. The lists are a
// best-effort baseline, not authoritative: they compensate for bank exports
// that encode debits as positive magnitudes. Callers may extend them.
type KeywordSets struct {
	Income  []string
	Expense []string
}

// DefaultKeywordSets returns the baseline income/expense keyword lists.
func DefaultKeywordSets() KeywordSets {
	return KeywordSets{
		Income: []string{
			"deposit", "salary", "payroll", "income", "refund", "credit",
			"transfer in", "ach credit", "merchant offers credit", "cashback",
			"reward", "bonus", "interest earned",
		},
		Expense: []string{
			"purchase", "withdrawal", "debit", "charge", "fee", "atm", "amazon",
			"gas", "fuel", "restaurant", "grocery", "shopping", "payment",
		},
	}
}

// Extend returns a copy with extra keywords appended to each list.
func (k KeywordSets) Extend(income, expense []string) KeywordSets {
	out := KeywordSets{
		Income:  append(append([]string{}, k.Income...), income...),
		Expense: append(append([]string{}, k.Expense...), expense...),
	}
	return out
}

// currencyDecoration covers the symbols and grouping separators stripped
// before numeric parsing.
const currencyDecoration = "$,€£¥"

// NormalizeAmount parses a raw amount token into a signed decimal. Sign comes
// from parenthesis or minus notation, then is reconciled against the row's
// description: an income keyword forces the amount non-negative, an expense
// keyword forces it non-positive. A description matching both resolves as
// income.
func NormalizeAmount(raw, description string, keywords KeywordSets) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencyDecoration, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	negative := false
	if strings.Contains(cleaned, "(") && strings.Contains(cleaned, ")") {
		negative = true
		cleaned = strings.NewReplacer("(", "", ")", "").Replace(cleaned)
	}
	if strings.HasPrefix(cleaned, "-") {
		negative = true
		cleaned = cleaned[1:]
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(cleaned))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unable to parse amount: %s", raw)
	}
	if negative {
		amount = amount.Abs().Neg()
	}

	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, keywords.Income):
		amount = amount.Abs()
	case containsAny(lower, keywords.Expense):
		amount = amount.Abs().Neg()
	}
	return amount, nil
}
