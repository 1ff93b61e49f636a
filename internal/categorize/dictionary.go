package categorize

import "strings"

// Entry pairs a lowercase substring with the category name it suggests.
type Entry struct {
	Pattern  string
	Category string
}

// Dictionary is an ordered list of substring-to-category pairs. Entries are
// tested in declaration order and the first hit wins, so substring priority
// is deterministic.
type Dictionary []Entry

// Match returns the category name for the first entry whose pattern is
// contained in the lowercased text.
func (d Dictionary) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, e := range d {
		if strings.Contains(lower, e.Pattern) {
			return e.Category, true
		}
	}
	return "", false
}

// Extend returns a copy with extra entries appended after the baseline, so
// user additions never preempt baseline patterns.
func (d Dictionary) Extend(extra []Entry) Dictionary {
	out := make(Dictionary, 0, len(d)+len(extra))
	out = append(out, d...)
	out = append(out, extra...)
	return out
}

// MerchantDictionary returns the baseline merchant-name dictionary.
func MerchantDictionary() Dictionary {
	return Dictionary{
		{"starbucks", "coffee"},
		{"mcdonalds", "fast-food"},
		{"uber", "transportation"},
		{"lyft", "transportation"},
		{"amazon", "shopping"},
		{"walmart", "groceries"},
		{"target", "shopping"},
		{"netflix", "entertainment"},
		{"spotify", "entertainment"},
		{"gym", "health"},
		{"doctor", "health"},
		{"dentist", "health"},
		{"gas", "transportation"},
		{"shell", "transportation"},
		{"exxon", "transportation"},
		{"home depot", "home-improvement"},
		{"lowes", "home-improvement"},
		{"restaurant", "dining"},
		{"pizza", "dining"},
		{"coffee", "dining"},
	}
}

// KeywordDictionary returns the baseline description-keyword dictionary.
func KeywordDictionary() Dictionary {
	return Dictionary{
		{"groceries", "groceries"},
		{"food", "groceries"},
		{"restaurant", "dining"},
		{"coffee", "dining"},
		{"gas", "transportation"},
		{"fuel", "transportation"},
		{"uber", "transportation"},
		{"lyft", "transportation"},
		{"netflix", "entertainment"},
		{"spotify", "entertainment"},
		{"gym", "health"},
		{"doctor", "health"},
		{"medical", "health"},
		{"insurance", "insurance"},
		{"rent", "housing"},
		{"mortgage", "housing"},
		{"utilities", "utilities"},
		{"electric", "utilities"},
		{"water", "utilities"},
		{"internet", "utilities"},
		{"phone", "utilities"},
		{"shopping", "shopping"},
		{"amazon", "shopping"},
		{"clothing", "shopping"},
		{"entertainment", "entertainment"},
		{"movie", "entertainment"},
		{"travel", "travel"},
		{"hotel", "travel"},
		{"flight", "travel"},
		{"education", "education"},
		{"school", "education"},
		{"tuition", "education"},
		{"investment", "investments"},
		{"savings", "savings"},
		{"transfer", "transfer"},
	}
}
