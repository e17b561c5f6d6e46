// Package dateutils provides the date and month-key helpers used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts used for transaction dates and budget months.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	MonthLayout        = "2006-01"
	MonthLabelLayout   = "Jan 2006"
)

// CommonFormats is the list of formats tried when importing dates from foreign files
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutFull,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var (
	isoDatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	spaces          = regexp.MustCompile(`\s+`)
)

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time and the detected layout.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate converts any date in CommonFormats to YYYY-MM-DD. Input that
// already has the YYYY-MM-DD shape is returned unchanged, even when it names
// a day the calendar lacks.
func NormalizeDate(dateStr string) (string, error) {
	if cleaned := CleanDateString(dateStr); IsISODate(cleaned) {
		return cleaned, nil
	}
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// CleanDateString trims whitespace and collapses inner runs of spaces
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// IsISODate reports whether s has the YYYY-MM-DD shape. Only the shape is
// checked; "2024-02-31" is accepted.
func IsISODate(s string) bool {
	return isoDatePattern.MatchString(s)
}

// IsMonthKey reports whether s is a YYYY-MM key with a month in 01..12
func IsMonthKey(s string) bool {
	if !monthKeyPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// MonthKey returns the YYYY-MM key for a date
func MonthKey(date time.Time) string {
	return date.Format(MonthLayout)
}

// ParseMonth parses a YYYY-MM key into the first day of that month (UTC)
func ParseMonth(month string) (time.Time, error) {
	if !IsMonthKey(month) {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// AddMonths shifts a month key by n calendar months (n may be negative).
// Shifting is done from the first of the month so day overflow never skips a month.
func AddMonths(month string, n int) (string, error) {
	start, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return MonthKey(start.AddDate(0, n, 0)), nil
}

// PreviousMonthOf returns the key of the calendar month before the one containing ref
func PreviousMonthOf(ref time.Time) string {
	return MonthKey(StartOfMonth(ref).AddDate(0, -1, 0))
}

// TrailingMonths returns n month keys ending with the month containing ref, oldest first
func TrailingMonths(ref time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	start := StartOfMonth(ref)
	months := make([]string, n)
	for i := 0; i < n; i++ {
		months[i] = MonthKey(start.AddDate(0, i-(n-1), 0))
	}
	return months
}

// MonthLabel renders a month key as "Jan 2006". Invalid keys are returned unchanged.
func MonthLabel(month string) string {
	t, err := ParseMonth(month)
	if err != nil {
		return month
	}
	return t.Format(MonthLabelLayout)
}
