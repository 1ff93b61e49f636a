package dedupe

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsense-dev/spendsense/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestDetectExternalIDMatch(t *testing.T) {
	existing := []model.Transaction{
		{ID: "t1", Date: date(2024, 1, 1), Merchant: "OLD MERCHANT", Amount: dec("-10.00"), ExternalID: "ext-42"},
	}
	// Same externalId, everything else different: still a duplicate.
	parsed := []model.ParsedTransaction{
		{Date: date(2024, 6, 30), Merchant: "NEW MERCHANT", Amount: dec("-999.99"), ExternalID: "ext-42"},
	}

	verdicts := Detect(parsed, existing)
	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].IsDuplicate)
	assert.Equal(t, 0.9, verdicts[0].Confidence)
	assert.Equal(t, "t1", verdicts[0].ExistingID)
}

func TestDetectFuzzyMatch(t *testing.T) {
	existing := []model.Transaction{
		{ID: "t1", Date: date(2024, 1, 15), Merchant: "WHOLE FOODS", Amount: dec("-82.19")},
	}

	tests := []struct {
		name string
		tx   model.ParsedTransaction
		want bool
	}{
		{
			name: "same date, merchant, amount",
			tx:   model.ParsedTransaction{Date: date(2024, 1, 15), Merchant: "WHOLE FOODS", Amount: dec("-82.19")},
			want: true,
		},
		{
			name: "amount within tolerance",
			tx:   model.ParsedTransaction{Date: date(2024, 1, 15), Merchant: "WHOLE FOODS", Amount: dec("-82.185")},
			want: true,
		},
		{
			name: "amount off by exactly the tolerance",
			tx:   model.ParsedTransaction{Date: date(2024, 1, 15), Merchant: "WHOLE FOODS", Amount: dec("-82.18")},
			want: false,
		},
		{
			name: "different date",
			tx:   model.ParsedTransaction{Date: date(2024, 1, 16), Merchant: "WHOLE FOODS", Amount: dec("-82.19")},
			want: false,
		},
		{
			name: "merchant text must match exactly",
			tx:   model.ParsedTransaction{Date: date(2024, 1, 15), Merchant: "whole foods", Amount: dec("-82.19")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdicts := Detect([]model.ParsedTransaction{tt.tx}, existing)
			require.Len(t, verdicts, 1)
			assert.Equal(t, tt.want, verdicts[0].IsDuplicate)
			if tt.want {
				assert.Equal(t, "t1", verdicts[0].ExistingID)
			}
		})
	}
}

func TestDetectVerdictsAlignWithInput(t *testing.T) {
	existing := []model.Transaction{
		{ID: "t1", Date: date(2024, 2, 1), Merchant: "NETFLIX", Amount: dec("-15.99")},
	}
	parsed := []model.ParsedTransaction{
		{Date: date(2024, 2, 2), Merchant: "SPOTIFY", Amount: dec("-9.99")},
		{Date: date(2024, 2, 1), Merchant: "NETFLIX", Amount: dec("-15.99")},
		{Date: date(2024, 2, 3), Merchant: "GYM", Amount: dec("-40.00")},
	}

	verdicts := Detect(parsed, existing)
	require.Len(t, verdicts, 3)
	assert.False(t, verdicts[0].IsDuplicate)
	assert.True(t, verdicts[1].IsDuplicate)
	assert.False(t, verdicts[2].IsDuplicate)
}

func TestDetectFirstHistoryMatchWins(t *testing.T) {
	existing := []model.Transaction{
		{ID: "older", Date: date(2024, 3, 1), Merchant: "CAFE", Amount: dec("-5.00")},
		{ID: "newer", Date: date(2024, 3, 1), Merchant: "CAFE", Amount: dec("-5.00")},
	}
	parsed := []model.ParsedTransaction{
		{Date: date(2024, 3, 1), Merchant: "CAFE", Amount: dec("-5.00")},
	}

	verdicts := Detect(parsed, existing)
	require.Len(t, verdicts, 1)
	assert.Equal(t, "older", verdicts[0].ExistingID)
}

func TestDetectEmptyInputs(t *testing.T) {
	assert.Empty(t, Detect(nil, nil))

	verdicts := Detect([]model.ParsedTransaction{
		{Date: date(2024, 1, 1), Merchant: "ANYTHING", Amount: dec("-1.00")},
	}, nil)
	require.Len(t, verdicts, 1)
	assert.False(t, verdicts[0].IsDuplicate)
}
