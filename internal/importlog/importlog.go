// Package importlog keeps a CSV audit trail of import runs.
package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the import log: the outcome of a single import run.
type Entry struct {
	Timestamp   time.Time
	User        string
	File        string
	Total       int
	Duplicates  int
	Imported    int
	Categorized int
	Errors      int
}

// Header is the CSV header for the import log.
const Header = "timestamp,user,file,total,duplicates,imported,categorized,errors"

const (
	numFields      = 8
	colTimestamp   = 0
	colUser        = 1
	colFile        = 2
	colTotal       = 3
	colDuplicates  = 4
	colImported    = 5
	colCategorized = 6
	colErrors      = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colUser] = e.User
	row[colFile] = e.File
	row[colTotal] = strconv.Itoa(e.Total)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colImported] = strconv.Itoa(e.Imported)
	row[colCategorized] = strconv.Itoa(e.Categorized)
	row[colErrors] = strconv.Itoa(e.Errors)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, numFields)
	for _, col := range []int{colTotal, colDuplicates, colImported, colCategorized, colErrors} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts[col] = n
	}

	return Entry{
		Timestamp:   ts,
		User:        record[colUser],
		File:        record[colFile],
		Total:       counts[colTotal],
		Duplicates:  counts[colDuplicates],
		Imported:    counts[colImported],
		Categorized: counts[colCategorized],
		Errors:      counts[colErrors],
	}, nil
}

// Append writes entries to the log at path, creating the file and header if
// needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from the log at path. Returns nil if the file
// does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
