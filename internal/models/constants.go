package models

// TransactionType tells whether money came in or went out
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the two known types
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Budget performance statuses
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusOver    = "over"
)

// Persistence keys for the two collections
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
)

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
)
