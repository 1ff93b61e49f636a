package csvparse

import (
	"fmt"
	"strings"
)

// StructuralError means the file as a whole is unrecognizable: no header
// mapped to any of the minimum required fields. No partial results accompany
// it.
type StructuralError struct {
	Headers []string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("no required fields found; available headers: %s; expected at least: date, description, amount",
		strings.Join(e.Headers, ", "))
}

// RowError is a recoverable per-row failure. The parser logs it, skips the
// row, and continues.
type RowError struct {
	Row int // 1-based file line, header is row 1
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
