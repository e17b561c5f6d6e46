// Package validation holds the input checks applied before a transaction or
// budget is handed to the book. Failures are reported per field, the way a
// form shows inline errors.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError is a single failed check on a named input field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every failed field of one input. A nil or empty Errors is not an error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a failed field
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Has reports whether the given field failed
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when nothing failed, so callers can `return errs.Err()`
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Required fails when value is empty after trimming
func (e *Errors) Required(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, message)
	}
}

// Positive fails unless amount > 0
func (e *Errors) Positive(field string, amount decimal.Decimal, message string) {
	if !amount.IsPositive() {
		e.Add(field, message)
	}
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'yaml', 'csv'", format)
	}
}

// IsValidDataDirectory checks that path is usable as a data directory:
// either missing (it will be created) or an existing directory.
func IsValidDataDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}

// IsValidFilePermissions checks if the given file mode is valid for ledger data files.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 { // Check if 'others' have any permissions
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
