// Package models provides the data structures used throughout the application.
package models

import (
	"encoding/json"
	"strings"

	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/validation"

	"github.com/shopspring/decimal"
)

// Transaction is a single recorded income or expense event.
//
// Amount is always stored as an unsigned magnitude; the direction lives in
// Type. SignedAmount derives the sign when one is needed.
type Transaction struct {
	ID          string          `json:"id" yaml:"id" csv:"ID"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount" csv:"Amount"`
	Date        string          `json:"date" yaml:"date" csv:"Date"` // YYYY-MM-DD
	Description string          `json:"description" yaml:"description" csv:"Description"`
	Type        TransactionType `json:"type" yaml:"type" csv:"Type"`
	Category    string          `json:"category" yaml:"category" csv:"Category"`
}

// UnmarshalJSON accepts signed amounts, as written by older blobs that
// stored expenses as negatives, and keeps only the magnitude.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Transaction(raw)
	t.Amount = t.Amount.Abs()
	return nil
}

// SignedAmount returns the amount negated for expenses
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Abs().Neg()
	}
	return t.Amount.Abs()
}

// IsExpense returns true for outgoing money
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsIncome returns true for incoming money
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// Month returns the YYYY-MM prefix of the date
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// InMonth reports whether the date falls in month, by string prefix
func (t Transaction) InMonth(month string) bool {
	return strings.HasPrefix(t.Date, month)
}

// Validate applies the input rules of the transaction form
func (t Transaction) Validate() error {
	var errs validation.Errors

	errs.Positive("amount", t.Amount, "Amount must be greater than 0")
	errs.Required("description", t.Description, "Description is required")
	errs.Required("date", t.Date, "Date is required")
	if strings.TrimSpace(t.Date) != "" && !dateutils.IsISODate(t.Date) {
		errs.Add("date", "Date must be formatted as YYYY-MM-DD")
	}

	switch {
	case !t.Type.IsValid():
		errs.Add("type", "Type must be income or expense")
	case strings.TrimSpace(t.Category) == "":
		errs.Add("category", "Category is required")
	case !IsValidCategory(t.Type, t.Category):
		errs.Add("category", "Category is not valid for "+string(t.Type))
	}

	return errs.Err()
}
