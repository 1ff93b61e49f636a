package importlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(file string, imported int) Entry {
	return Entry{
		Timestamp:   time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		User:        "local",
		File:        file,
		Total:       10,
		Duplicates:  2,
		Imported:    imported,
		Categorized: 6,
		Errors:      1,
	}
}

func TestAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "import-log.csv")

	require.NoError(t, Append(path, []Entry{entry("jan.csv", 8)}))
	require.NoError(t, Append(path, []Entry{entry("feb.csv", 7)}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entry("jan.csv", 8), entries[0])
	assert.Equal(t, entry("feb.csv", 7), entries[1])

	// The header is written once, on creation.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "timestamp,user,file"))
}

func TestReadMissingFile(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntryRejectsBadRows(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "short"})
	assert.Error(t, err)

	row := MarshalEntry(entry("x.csv", 1))
	row[colTimestamp] = "yesterday"
	_, err = UnmarshalEntry(row)
	assert.Error(t, err)

	row = MarshalEntry(entry("x.csv", 1))
	row[colTotal] = "many"
	_, err = UnmarshalEntry(row)
	assert.Error(t, err)
}
