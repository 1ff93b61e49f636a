package csvparse

import "strings"

// Canonical transaction fields that raw CSV headers are mapped onto.
const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldMerchant    = "merchant"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldAccount     = "account"
	FieldCategory    = "category"
	FieldTags        = "tags"
	FieldExternalID  = "externalId"
)

// fieldOrder fixes the order fields are tested against a header. A header is
// claimed by the first field with a matching synonym, so description wins
// "payee" over merchant.
var fieldOrder = []string{
	FieldDate,
	FieldDescription,
	FieldMerchant,
	FieldAmount,
	FieldCurrency,
	FieldAccount,
	FieldCategory,
	FieldTags,
	FieldExternalID,
}

// fieldSynonyms lists lowercase substrings recognized per canonical field,
// covering the header spellings seen across bank export formats.
var fieldSynonyms = map[string][]string{
	FieldDate:        {"date", "transaction_date", "post_date", "posted_date", "date_posted", "transaction date"},
	FieldDescription: {"description", "memo", "note", "details", "transaction_description", "payee", "merchant_name"},
	FieldMerchant:    {"merchant", "payee", "vendor", "store", "business", "merchant_name"},
	FieldAmount:      {"amount", "debit", "credit", "transaction_amount", "sum", "value"},
	FieldCurrency:    {"currency", "curr", "ccy"},
	FieldAccount:     {"account", "account_name", "account_number", "from_account", "to_account"},
	FieldCategory:    {"category", "category_name", "type", "transaction_type", "classification"},
	FieldTags:        {"tags", "tag", "labels", "keywords"},
	FieldExternalID:  {"external_id", "id", "transaction_id", "reference", "ref"},
}

// DetectFieldMapping maps canonical field names to the original header text.
// Matching is substring containment on the lowercased, trimmed header; each
// header claims at most one field, and a later header replaces an earlier one
// mapped to the same field. Partial or empty mappings are valid results; the
// caller decides whether coverage is sufficient.
func DetectFieldMapping(headers []string) map[string]string {
	mapping := make(map[string]string)
	for _, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(header))
		for _, field := range fieldOrder {
			if containsAny(normalized, fieldSynonyms[field]) {
				mapping[field] = header
				break
			}
		}
	}
	return mapping
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
