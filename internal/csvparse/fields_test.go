package csvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFieldMapping(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    map[string]string
	}{
		{
			name:    "plain export",
			headers: []string{"Date", "Description", "Amount"},
			want: map[string]string{
				FieldDate:        "Date",
				FieldDescription: "Description",
				FieldAmount:      "Amount",
			},
		},
		{
			name:    "spaced and decorated headers",
			headers: []string{"Transaction Date", " Memo ", "Transaction Amount", "Account Number"},
			want: map[string]string{
				FieldDate:        "Transaction Date",
				FieldDescription: " Memo ",
				FieldAmount:      "Transaction Amount",
				FieldAccount:     "Account Number",
			},
		},
		{
			name:    "payee claimed by description before merchant",
			headers: []string{"Date", "Payee", "Amount"},
			want: map[string]string{
				FieldDate:        "Date",
				FieldDescription: "Payee",
				FieldAmount:      "Amount",
			},
		},
		{
			name:    "later header replaces earlier one for the same field",
			headers: []string{"Date", "Description", "Debit", "Credit"},
			want: map[string]string{
				FieldDate:        "Date",
				FieldDescription: "Description",
				FieldAmount:      "Credit",
			},
		},
		{
			name:    "full statement",
			headers: []string{"Posted Date", "Description", "Vendor", "Amount", "Currency", "Category", "Tags", "Reference"},
			want: map[string]string{
				FieldDate:        "Posted Date",
				FieldDescription: "Description",
				FieldMerchant:    "Vendor",
				FieldAmount:      "Amount",
				FieldCurrency:    "Currency",
				FieldCategory:    "Category",
				FieldTags:        "Tags",
				FieldExternalID:  "Reference",
			},
		},
		{
			name:    "unrecognized headers are ignored",
			headers: []string{"Foo", "Bar", "Baz"},
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFieldMapping(tt.headers))
		})
	}
}
