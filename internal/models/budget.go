package models

import (
	"strings"

	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/validation"

	"github.com/shopspring/decimal"
)

// Budget is a spending ceiling for one expense category in one calendar month.
// At most one budget exists per (Category, Month).
type Budget struct {
	ID       string          `json:"id" yaml:"id" csv:"ID"`
	Category ExpenseCategory `json:"category" yaml:"category" csv:"Category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount" csv:"Amount"`
	Month    string          `json:"month" yaml:"month" csv:"Month"` // YYYY-MM
}

// SameSlot reports whether both budgets cover the same category and month
func (b Budget) SameSlot(other Budget) bool {
	return b.Category == other.Category && b.Month == other.Month
}

// Validate applies the input rules of the budget form
func (b Budget) Validate() error {
	var errs validation.Errors

	switch {
	case strings.TrimSpace(string(b.Category)) == "":
		errs.Add("category", "Category is required")
	case !b.Category.IsValid():
		errs.Add("category", "Category must be an expense category")
	}
	errs.Positive("amount", b.Amount, "Amount must be greater than 0")
	switch {
	case strings.TrimSpace(b.Month) == "":
		errs.Add("month", "Month is required")
	case !dateutils.IsMonthKey(b.Month):
		errs.Add("month", "Month must be formatted as YYYY-MM")
	}

	return errs.Err()
}

// CategorySummary is the derived spend of one category over a reporting window.
// Color is a presentation hint only.
type CategorySummary struct {
	Category   string          `json:"category" yaml:"category" csv:"Category"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount" csv:"Amount"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage" csv:"Percentage"`
	Color      string          `json:"color" yaml:"color" csv:"Color"`
}
