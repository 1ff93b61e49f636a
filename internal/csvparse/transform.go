package csvparse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spendsense-dev/spendsense/internal/model"
)

// Column names that, when present as distinct columns, carry the amount split
// across debit and credit sides.
var (
	debitColumns  = []string{"debit", "withdrawal"}
	creditColumns = []string{"credit", "deposit"}
)

// TransformRecord converts one raw row (original header -> trimmed value)
// into a ParsedTransaction using the detected mapping. Failures are per-row:
// the error names the available headers so the user can diagnose the file.
func (p *Parser) TransformRecord(record map[string]string, mapping map[string]string) (model.ParsedTransaction, error) {
	values := make(map[string]string)
	for field, header := range mapping {
		if v := record[header]; v != "" {
			values[field] = v
		}
	}

	if values[FieldDate] == "" {
		return model.ParsedTransaction{}, fmt.Errorf("date field is required but not found; available headers: %s", headerList(record))
	}
	if values[FieldDescription] == "" && values[FieldMerchant] == "" {
		return model.ParsedTransaction{}, fmt.Errorf("description or merchant field is required but not found; available headers: %s", headerList(record))
	}

	// Separate debit/credit columns take precedence over a single mapped
	// amount column: a populated debit is negated, a populated credit passes
	// through as positive.
	rawAmount := combineDebitCredit(record)
	if rawAmount == "" {
		rawAmount = values[FieldAmount]
	}
	if rawAmount == "" {
		return model.ParsedTransaction{}, fmt.Errorf("amount field is required but not found; available headers: %s", headerList(record))
	}

	date, err := ParseFlexibleDate(values[FieldDate])
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("parsing date %q: %w", values[FieldDate], err)
	}

	description := values[FieldDescription]
	if description == "" {
		description = values[FieldMerchant]
	}
	merchant := values[FieldMerchant]
	if merchant == "" {
		merchant = values[FieldDescription]
	}

	amount, err := NormalizeAmount(rawAmount, description, p.Keywords)
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("parsing amount %q: %w", rawAmount, err)
	}

	currency := values[FieldCurrency]
	if currency == "" {
		currency = p.DefaultCurrency
	}
	account := values[FieldAccount]
	if account == "" {
		account = p.DefaultAccount
	}

	return model.ParsedTransaction{
		Date:        date,
		Description: description,
		Merchant:    merchant,
		Amount:      amount,
		Currency:    currency,
		Account:     account,
		Category:    values[FieldCategory],
		Tags:        splitTags(values[FieldTags]),
		ExternalID:  values[FieldExternalID],
	}, nil
}

// combineDebitCredit returns the raw amount token when the row carries
// dedicated debit/credit columns, or "" when it does not.
func combineDebitCredit(record map[string]string) string {
	var debit, credit string
	for header, value := range record {
		name := strings.ToLower(strings.TrimSpace(header))
		switch {
		case equalsAny(name, debitColumns):
			if value != "" {
				debit = value
			}
		case equalsAny(name, creditColumns):
			if value != "" {
				credit = value
			}
		}
	}
	if debit != "" {
		return "-" + debit
	}
	return credit
}

func equalsAny(s string, names []string) bool {
	for _, n := range names {
		if s == n {
			return true
		}
	}
	return false
}

// splitTags splits on comma or semicolon, trimming and dropping empties.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	var tags []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func headerList(record map[string]string) string {
	headers := make([]string, 0, len(record))
	for h := range record {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	return strings.Join(headers, ", ")
}
