package model

// MatchType selects how a rule's pattern is interpreted.
type MatchType string

const (
	MatchKeyword     MatchType = "KEYWORD"      // description contains pattern
	MatchMerchant    MatchType = "MERCHANT"     // merchant contains pattern
	MatchAmountRange MatchType = "AMOUNT_RANGE" // pattern is "min-max"
	MatchAccount     MatchType = "ACCOUNT"      // account id equals pattern
)

// Rule is a user-defined pattern-to-category mapping, evaluated before the
// static dictionaries. Inactive rules are filtered at the storage boundary.
type Rule struct {
	ID         string
	UserID     string
	MatchType  MatchType
	Pattern    string
	Priority   int // higher evaluated first
	IsActive   bool
	CategoryID string
}
