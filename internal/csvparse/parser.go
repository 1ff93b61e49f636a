// Package csvparse turns heterogeneous bank CSV exports into canonical
// transactions. Headers are matched against synonym lists rather than fixed
// positions, so no particular column order or exact header names are
// required.
package csvparse

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spendsense-dev/spendsense/internal/model"
)

// Parser drives field mapping and row transformation over a whole file.
// Fields may be adjusted after construction, before the first Parse call.
type Parser struct {
	Keywords        KeywordSets
	DefaultCurrency string
	DefaultAccount  string

	log zerolog.Logger
}

// NewParser creates a Parser with baseline keywords and defaults.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{
		Keywords:        DefaultKeywordSets(),
		DefaultCurrency: "USD",
		DefaultAccount:  "Default Account",
		log:             log,
	}
}

// Parse converts CSV file content into parsed transactions, in source row
// order. Per-row failures are logged, collected, and skipped; the returned
// error is non-nil only for structural problems (unreadable CSV, or no
// recognizable required headers at all). A file with zero data rows yields an
// empty result and no error.
func (p *Parser) Parse(content string) ([]model.ParsedTransaction, []*RowError, error) {
	cr := csv.NewReader(strings.NewReader(content))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	mapping := DetectFieldMapping(headers)
	if mapping[FieldDate] == "" && mapping[FieldDescription] == "" && mapping[FieldAmount] == "" {
		return nil, nil, &StructuralError{Headers: headers}
	}

	var (
		txns    []model.ParsedTransaction
		rowErrs []*RowError
	)
	for i, rec := range records[1:] {
		row := i + 2 // 1-based, after the header row

		if len(rec) != len(headers) {
			rowErr := &RowError{Row: row, Err: fmt.Errorf("expected %d fields, got %d", len(headers), len(rec))}
			p.log.Warn().Int("row", row).Strs("record", rec).Msg("skipping row with mismatched field count")
			rowErrs = append(rowErrs, rowErr)
			continue
		}

		record := make(map[string]string, len(headers))
		for j, h := range headers {
			record[h] = strings.TrimSpace(rec[j])
		}

		txn, err := p.TransformRecord(record, mapping)
		if err != nil {
			rowErr := &RowError{Row: row, Err: err}
			p.log.Warn().Int("row", row).Strs("record", rec).Err(err).Msg("skipping unparseable row")
			rowErrs = append(rowErrs, rowErr)
			continue
		}
		txns = append(txns, txn)
	}

	return txns, rowErrs, nil
}
