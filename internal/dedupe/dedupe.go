// Package dedupe flags newly parsed transactions that already exist in a
// user's stored history. Matching is identifier-first with a fuzzy fallback
// on date, amount, and merchant.
package dedupe

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsense-dev/spendsense/internal/model"
)

// Verdict is the duplicate decision for one parsed transaction. Verdicts are
// positionally aligned with the input slice.
type Verdict struct {
	IsDuplicate bool
	Confidence  float64
	ExistingID  string
}

// duplicateConfidence applies to both the identifier and fuzzy paths.
const duplicateConfidence = 0.9

// amountTolerance is the absolute tolerance for fuzzy amount equality.
var amountTolerance = decimal.RequireFromString("0.01")

// Detect compares each parsed transaction against the existing history
// independently. An externalId match alone is decisive, regardless of date,
// amount, or merchant agreement. Otherwise a transaction is a duplicate when
// some existing transaction shares its calendar date, its merchant text
// exactly, and an amount within tolerance.
func Detect(parsed []model.ParsedTransaction, existing []model.Transaction) []Verdict {
	// Lookup tables keep this linear in history size instead of quadratic;
	// first-wins insertion preserves history order for ties.
	byExternalID := make(map[string]string)
	byDateMerchant := make(map[dateMerchantKey][]model.Transaction)
	for _, tx := range existing {
		if tx.ExternalID != "" {
			if _, seen := byExternalID[tx.ExternalID]; !seen {
				byExternalID[tx.ExternalID] = tx.ID
			}
		}
		key := makeKey(tx.Date, tx.Merchant)
		byDateMerchant[key] = append(byDateMerchant[key], tx)
	}

	verdicts := make([]Verdict, len(parsed))
	for i, tx := range parsed {
		verdicts[i] = detectOne(tx, byExternalID, byDateMerchant)
	}
	return verdicts
}

func detectOne(tx model.ParsedTransaction, byExternalID map[string]string, byDateMerchant map[dateMerchantKey][]model.Transaction) Verdict {
	if tx.ExternalID != "" {
		if id, ok := byExternalID[tx.ExternalID]; ok {
			return Verdict{IsDuplicate: true, Confidence: duplicateConfidence, ExistingID: id}
		}
	}

	for _, candidate := range byDateMerchant[makeKey(tx.Date, tx.Merchant)] {
		if tx.Amount.Sub(candidate.Amount).Abs().LessThan(amountTolerance) {
			return Verdict{IsDuplicate: true, Confidence: duplicateConfidence, ExistingID: candidate.ID}
		}
	}

	return Verdict{}
}

// dateMerchantKey buckets transactions by calendar date (time of day
// ignored) and exact merchant text.
type dateMerchantKey struct {
	date     string
	merchant string
}

func makeKey(date time.Time, merchant string) dateMerchantKey {
	return dateMerchantKey{date: date.Format("2006-01-02"), merchant: merchant}
}
