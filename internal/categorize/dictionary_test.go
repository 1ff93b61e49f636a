package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionaryMatch(t *testing.T) {
	merchants := MerchantDictionary()

	tests := []struct {
		text    string
		want    string
		wantHit bool
	}{
		{"STARBUCKS STORE #4821", "coffee", true},
		{"Uber Trip 4X2", "transportation", true},
		{"HOME DEPOT #123", "home-improvement", true},
		{"SOME UNKNOWN MERCHANT", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := merchants.Match(tt.text)
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDictionaryMatchOrderIsDeterministic(t *testing.T) {
	// "STARBUCKS COFFEE" matches both the starbucks and coffee entries;
	// the earlier entry wins every time.
	merchants := MerchantDictionary()
	for i := 0; i < 10; i++ {
		got, ok := merchants.Match("STARBUCKS COFFEE")
		assert.True(t, ok)
		assert.Equal(t, "coffee", got)
	}

	got, ok := merchants.Match("CORNER COFFEE HOUSE")
	assert.True(t, ok)
	assert.Equal(t, "dining", got, "plain coffee falls to the catch-all entry")
}

func TestDictionaryExtend(t *testing.T) {
	base := MerchantDictionary()
	extended := base.Extend([]Entry{
		{Pattern: "local bakery", Category: "dining"},
		{Pattern: "starbucks", Category: "splurges"}, // never reached
	})

	got, ok := extended.Match("LOCAL BAKERY #2")
	assert.True(t, ok)
	assert.Equal(t, "dining", got)

	got, ok = extended.Match("STARBUCKS")
	assert.True(t, ok)
	assert.Equal(t, "coffee", got, "baseline entries keep priority over extensions")

	assert.Len(t, base, len(MerchantDictionary()), "baseline is not mutated")
}
