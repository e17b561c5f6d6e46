package models

import (
	"errors"
	"strings"
	"time"

	"fjacquet/finance-ledger/internal/dateutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionBuilder provides a fluent API for constructing transactions
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder creates a new TransactionBuilder for an expense with a fresh id
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			ID:     uuid.NewString(),
			Type:   TypeExpense,
			Amount: decimal.Zero,
		},
	}
}

// WithID sets the transaction ID, replacing the generated one
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(id) == "" {
		b.err = errors.New("id cannot be empty")
		return b
	}
	b.tx.ID = id
	return b
}

// WithDate sets the date from any supported layout, normalised to YYYY-MM-DD
func (b *TransactionBuilder) WithDate(dateStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(dateStr) == "" {
		b.err = errors.New("date cannot be empty")
		return b
	}
	normalized, err := dateutils.NormalizeDate(dateStr)
	if err != nil {
		b.err = err
		return b
	}
	b.tx.Date = normalized
	return b
}

// WithDateFromTime sets the date from a time.Time
func (b *TransactionBuilder) WithDateFromTime(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("date cannot be zero")
		return b
	}
	b.tx.Date = dateutils.ToISODate(date)
	return b
}

// WithAmount sets the amount. The type carries the direction, so a
// negative amount is left for Build to reject.
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithAmountFromString parses and sets the amount
func (b *TransactionBuilder) WithAmountFromString(amount string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	dec, err := ParseAmount(amount)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithAmount(dec)
}

// WithDescription sets the trimmed description
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = strings.TrimSpace(description)
	return b
}

// AsIncome marks the transaction as income
func (b *TransactionBuilder) AsIncome() *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = TypeIncome
	return b
}

// AsExpense marks the transaction as an expense
func (b *TransactionBuilder) AsExpense() *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = TypeExpense
	return b
}

// WithType sets the type directly
func (b *TransactionBuilder) WithType(t TransactionType) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = t
	return b
}

// WithCategory sets the category, canonicalising its spelling when it is
// known for the current type. Set the type first.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	canonical, _ := CanonicalCategory(b.tx.Type, category)
	b.tx.Category = canonical
	return b
}

// Build validates and returns the transaction
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, b.err
	}
	if err := b.tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return b.tx, nil
}

// NewBudget builds a validated budget with a fresh id
func NewBudget(category string, amount decimal.Decimal, month string) (Budget, error) {
	cat, err := ParseExpenseCategory(category)
	if err != nil {
		cat = ExpenseCategory(category)
	}
	b := Budget{
		ID:       uuid.NewString(),
		Category: cat,
		Amount:   amount,
		Month:    strings.TrimSpace(month),
	}
	if err := b.Validate(); err != nil {
		return Budget{}, err
	}
	return b, nil
}
