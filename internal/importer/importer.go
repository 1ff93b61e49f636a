// Package importer orchestrates a CSV import batch: parse, duplicate
// detection, categorization, and persistence. Imports are at-least-effort:
// a failing row is reported, never rolls back rows already accepted.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/spendsense-dev/spendsense/internal/categorize"
	"github.com/spendsense-dev/spendsense/internal/csvparse"
	"github.com/spendsense-dev/spendsense/internal/dedupe"
	"github.com/spendsense-dev/spendsense/internal/logging"
	"github.com/spendsense-dev/spendsense/internal/model"
	"github.com/spendsense-dev/spendsense/internal/storage"
)

// accountNameDistance is the maximum edit distance accepted when falling
// back from exact account-name matching.
const accountNameDistance = 2

// Service runs import batches against a store.
type Service struct {
	store  storage.Store
	parser *csvparse.Parser
	engine *categorize.Engine
}

// NewService creates an import Service.
func NewService(store storage.Store, parser *csvparse.Parser, engine *categorize.Engine) *Service {
	return &Service{store: store, parser: parser, engine: engine}
}

// Row is one parsed transaction annotated for import.
type Row struct {
	model.ParsedTransaction

	AccountID         string // resolved from the source-file account label; empty if unmapped
	IsDuplicate       bool
	ExistingID        string
	SuggestedCategory string // category name; empty if uncategorized
	Confidence        float64
}

// Summary counts the outcome of a preview.
type Summary struct {
	Total       int
	Duplicates  int
	New         int
	Categorized int
}

// Preview is the annotated result of parsing a file, before anything is
// persisted.
type Preview struct {
	Rows      []Row
	Summary   Summary
	RowErrors []string // per-row parse failures, already skipped
}

// Preview parses CSV content and annotates each transaction with its
// duplicate verdict, resolved account, and suggested category. Rules and
// categories are fetched once for the whole batch.
func (s *Service) Preview(ctx context.Context, userID, csvContent string) (*Preview, error) {
	log := logging.FromContext(ctx)

	parsed, rowErrs, err := s.parser.Parse(csvContent)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.Transactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching existing transactions: %w", err)
	}
	verdicts := dedupe.Detect(parsed, existing)

	accounts, err := s.store.Accounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}

	session, err := s.engine.NewSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	preview := &Preview{Rows: make([]Row, len(parsed))}
	for i, txn := range parsed {
		row := Row{ParsedTransaction: txn}

		verdict := verdicts[i]
		row.IsDuplicate = verdict.IsDuplicate
		row.ExistingID = verdict.ExistingID

		if acct := resolveAccount(accounts, txn.Account); acct != nil {
			row.AccountID = acct.ID
		}

		if !row.IsDuplicate {
			if res := session.Categorize(txn.Description, txn.Merchant, txn.Amount, row.AccountID); res != nil {
				row.SuggestedCategory = session.CategoryName(res.CategoryID)
				row.Confidence = res.Confidence
			}
		}

		preview.Rows[i] = row
	}

	for _, re := range rowErrs {
		preview.RowErrors = append(preview.RowErrors, re.Error())
	}
	preview.Summary = summarize(preview.Rows)

	log.Info().
		Int("total", preview.Summary.Total).
		Int("duplicates", preview.Summary.Duplicates).
		Int("categorized", preview.Summary.Categorized).
		Int("row_errors", len(preview.RowErrors)).
		Msg("previewed import batch")

	return preview, nil
}

// Result reports an import batch. Errors holds per-row failures; the batch
// itself always completes.
type Result struct {
	Imported int
	Errors   []string
}

// Import persists previewed rows, skipping duplicates. A row whose category
// was not suggested is categorized here; a row that fails to resolve or
// insert is recorded in Errors and does not stop the batch.
func (s *Service) Import(ctx context.Context, userID string, rows []Row) (*Result, error) {
	log := logging.FromContext(ctx)

	accounts, err := s.store.Accounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	session, err := s.engine.NewSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, row := range rows {
		if row.IsDuplicate {
			continue
		}

		acct, ok := byID[row.AccountID]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("account not found for transaction: %s", row.Description))
			continue
		}

		categoryID := ""
		if row.SuggestedCategory != "" {
			if cat, err := s.store.FindCategoryByName(ctx, userID, row.SuggestedCategory); err == nil && cat != nil {
				categoryID = cat.ID
			}
		}
		if categoryID == "" {
			if res := session.Categorize(row.Description, row.Merchant, row.Amount, acct.ID); res != nil {
				categoryID = res.CategoryID
			}
		}

		currency := row.Currency
		if currency == "" {
			currency = "USD"
		}

		txn := model.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			AccountID:   acct.ID,
			Date:        row.Date,
			Description: row.Description,
			Merchant:    row.Merchant,
			Amount:      row.Amount,
			Currency:    currency,
			CategoryID:  categoryID,
			Tags:        row.Tags,
			ExternalID:  row.ExternalID,
			IsTransfer:  false,
		}
		if err := s.store.InsertTransaction(ctx, &txn); err != nil {
			log.Error().Err(err).Str("description", row.Description).Msg("failed to insert transaction")
			result.Errors = append(result.Errors, fmt.Sprintf("failed to import: %s", row.Description))
			continue
		}
		result.Imported++
	}

	log.Info().Int("imported", result.Imported).Int("errors", len(result.Errors)).Msg("imported batch")
	return result, nil
}

// resolveAccount matches a source-file account label to a stored account:
// exact case-insensitive name match first, then the closest name within a
// small edit distance.
func resolveAccount(accounts []model.Account, label string) *model.Account {
	for i, a := range accounts {
		if strings.EqualFold(a.Name, label) {
			return &accounts[i]
		}
	}

	best := -1
	bestDist := accountNameDistance + 1
	lower := strings.ToLower(label)
	for i, a := range accounts {
		d := levenshtein.ComputeDistance(strings.ToLower(a.Name), lower)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best >= 0 {
		return &accounts[best]
	}
	return nil
}

func summarize(rows []Row) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		if r.IsDuplicate {
			s.Duplicates++
		}
		if r.SuggestedCategory != "" {
			s.Categorized++
		}
	}
	s.New = s.Total - s.Duplicates
	return s
}
