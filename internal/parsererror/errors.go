// Package parsererror holds the typed errors raised while reading ledger
// data from CSV files and persisted blobs.
package parsererror

import "fmt"

// ParseError represents a value that could not be parsed. Row is the
// 1-based data row of the source, or 0 when the value did not come from a row.
type ParseError struct {
	Source string
	Row    int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s row %d: failed to parse %s='%s': %v",
			e.Source, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a file that was read but rejected as a whole.
// Err, when set, holds the row-level failures behind the rejection.
type ValidationError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file that does not have the
// expected layout, such as a CSV file missing a required column.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // optional, first bytes of the offending content
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// CorruptDataError represents a persisted blob that exists but cannot be decoded
type CorruptDataError struct {
	Key string
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("stored data for key '%s' is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// RowErrors collects the rows rejected during an import
type RowErrors []*ParseError

func (e RowErrors) Error() string {
	switch len(e) {
	case 0:
		return "no rows rejected"
	case 1:
		return e[0].Error()
	default:
		return fmt.Sprintf("%d rows rejected, first: %v", len(e), e[0])
	}
}
