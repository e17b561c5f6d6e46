package ledger

import (
	"sort"
	"strings"

	"fjacquet/finance-ledger/internal/models"
)

// TransactionFilter narrows a transaction list. Empty fields match everything.
type TransactionFilter struct {
	// Search matches description or category, case-insensitively
	Search   string
	Type     models.TransactionType
	Category string
}

// Matches reports whether tx passes every set criterion
func (f TransactionFilter) Matches(tx models.Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(tx.Description), term) ||
			strings.Contains(strings.ToLower(tx.Category), term)
	}
	return true
}

// IsEmpty reports whether the filter matches everything
func (f TransactionFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && f.Type == "" && f.Category == ""
}

// Filter returns the transactions matching f, in their original order
func Filter(transactions []models.Transaction, f TransactionFilter) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// SortByDateDesc returns a copy sorted newest first; same-day entries keep their order
func SortByDateDesc(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// Recent returns at most n transactions from the head of the list
func Recent(transactions []models.Transaction, n int) []models.Transaction {
	if n <= 0 {
		return []models.Transaction{}
	}
	if len(transactions) < n {
		n = len(transactions)
	}
	out := make([]models.Transaction, n)
	copy(out, transactions[:n])
	return out
}
