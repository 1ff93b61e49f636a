// Package categorize assigns spending categories to transactions through
// three tiers: user rules (priority order), a merchant dictionary, and a
// description-keyword dictionary. Absence of a category is a valid outcome,
// never an error.
package categorize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendsense-dev/spendsense/internal/model"
)

// Confidence scores per tier. Heuristic trust levels, not probabilities.
const (
	ruleConfidence     = 0.9
	merchantConfidence = 0.7
	keywordConfidence  = 0.5
)

// Result is the outcome of categorizing one transaction.
type Result struct {
	CategoryID  string
	Confidence  float64
	MatchedRule string // pattern of the rule that fired, for diagnostics
}

// Source provides the stored inputs the engine consumes.
type Source interface {
	ActiveRules(ctx context.Context, userID string) ([]model.Rule, error)
	Categories(ctx context.Context, userID string) ([]model.Category, error)
	FindCategoryByName(ctx context.Context, userID, name string) (*model.Category, error)
}

// Engine evaluates the categorization tiers against a Source.
type Engine struct {
	store     Source
	merchants Dictionary
	keywords  Dictionary
}

// NewEngine creates an Engine over the given source and dictionaries.
func NewEngine(store Source, merchants, keywords Dictionary) *Engine {
	return &Engine{store: store, merchants: merchants, keywords: keywords}
}

// Categorize runs the tiers for a single transaction, fetching the user's
// rules and resolving dictionary category names through the store. Returns
// nil when nothing matched.
func (e *Engine) Categorize(ctx context.Context, userID, description, merchant string, amount decimal.Decimal, accountID string) (*Result, error) {
	rules, err := e.store.ActiveRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching rules: %w", err)
	}

	if r := matchRules(rules, description, merchant, amount, accountID); r != nil {
		return r, nil
	}

	if merchant != "" {
		if name, ok := e.merchants.Match(merchant); ok {
			cat, err := e.store.FindCategoryByName(ctx, userID, name)
			if err != nil {
				return nil, fmt.Errorf("resolving category %q: %w", name, err)
			}
			if cat != nil {
				return &Result{CategoryID: cat.ID, Confidence: merchantConfidence}, nil
			}
		}
	}

	if name, ok := e.keywords.Match(description); ok {
		cat, err := e.store.FindCategoryByName(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("resolving category %q: %w", name, err)
		}
		if cat != nil {
			return &Result{CategoryID: cat.ID, Confidence: keywordConfidence}, nil
		}
	}

	return nil, nil
}

// NewSession fetches a user's rules and categories once, for categorizing a
// whole batch without per-transaction storage round trips. The session is
// read-only after construction and safe for concurrent use.
func (e *Engine) NewSession(ctx context.Context, userID string) (*Session, error) {
	rules, err := e.store.ActiveRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching rules: %w", err)
	}
	categories, err := e.store.Categories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	byName := make(map[string]string, len(categories))
	byID := make(map[string]string, len(categories))
	for _, c := range categories {
		key := strings.ToLower(c.Name)
		if _, seen := byName[key]; !seen {
			byName[key] = c.ID
		}
		byID[c.ID] = c.Name
	}

	return &Session{
		engine: e,
		rules:  sortByPriority(rules),
		byName: byName,
		byID:   byID,
	}, nil
}

// Session holds one user's rules and category lookups for a batch.
type Session struct {
	engine *Engine
	rules  []model.Rule
	byName map[string]string // lowercased name -> id
	byID   map[string]string // id -> name
}

// Categorize runs the tiers against the cached rules and categories.
// Pure computation; returns nil when nothing matched.
func (s *Session) Categorize(description, merchant string, amount decimal.Decimal, accountID string) *Result {
	if r := matchRules(s.rules, description, merchant, amount, accountID); r != nil {
		return r
	}

	if merchant != "" {
		if name, ok := s.engine.merchants.Match(merchant); ok {
			if id, ok := s.byName[strings.ToLower(name)]; ok {
				return &Result{CategoryID: id, Confidence: merchantConfidence}
			}
		}
	}

	if name, ok := s.engine.keywords.Match(description); ok {
		if id, ok := s.byName[strings.ToLower(name)]; ok {
			return &Result{CategoryID: id, Confidence: keywordConfidence}
		}
	}

	return nil
}

// CategoryName resolves a cached category id back to its display name.
func (s *Session) CategoryName(id string) string {
	return s.byID[id]
}

// matchRules tests rules in priority order and returns the first hit.
func matchRules(rules []model.Rule, description, merchant string, amount decimal.Decimal, accountID string) *Result {
	for _, rule := range sortByPriority(rules) {
		if matchesRule(rule, description, merchant, amount, accountID) {
			return &Result{
				CategoryID:  rule.CategoryID,
				Confidence:  ruleConfidence,
				MatchedRule: rule.Pattern,
			}
		}
	}
	return nil
}

// matchesRule tests one rule. Malformed rules never match and never fail:
// an unparseable AMOUNT_RANGE or unknown match type is simply skipped.
func matchesRule(rule model.Rule, description, merchant string, amount decimal.Decimal, accountID string) bool {
	switch rule.MatchType {
	case model.MatchKeyword:
		return strings.Contains(strings.ToLower(description), strings.ToLower(rule.Pattern))

	case model.MatchMerchant:
		if merchant == "" {
			return false
		}
		return strings.Contains(strings.ToLower(merchant), strings.ToLower(rule.Pattern))

	case model.MatchAccount:
		return accountID == rule.Pattern

	case model.MatchAmountRange:
		parts := strings.Split(rule.Pattern, "-")
		if len(parts) != 2 {
			return false
		}
		min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
		if err != nil {
			return false
		}
		max, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return false
		}
		return amount.GreaterThanOrEqual(min) && amount.LessThanOrEqual(max)

	default:
		return false
	}
}

// sortByPriority returns a copy sorted by priority descending. The sort is
// stable, so ties keep their stored order.
func sortByPriority(rules []model.Rule) []model.Rule {
	sorted := make([]model.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority > sorted[j].Priority })
	return sorted
}
