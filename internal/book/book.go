// Package book owns the live transaction and budget collections. Every
// mutation is validated, applied in memory and written through the store
// before it returns; a failed write leaves the in-memory state unchanged.
package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fjacquet/finance-ledger/internal/ledger"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/store"

	"github.com/google/uuid"
)

var (
	// ErrTransactionNotFound is returned for unknown transaction ids
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrBudgetNotFound is returned for unknown budget ids
	ErrBudgetNotFound = errors.New("budget not found")
	// ErrAmbiguousID is returned when an id prefix matches several entries
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// Book holds both collections for the lifetime of the process
type Book struct {
	mu           sync.RWMutex
	repo         *store.Repository
	logger       logging.Logger
	transactions []models.Transaction
	budgets      []models.Budget
}

// Open loads both collections from repo. Missing or malformed stored data
// starts the corresponding collection empty.
func Open(ctx context.Context, repo *store.Repository, logger logging.Logger) (*Book, error) {
	snap, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open book: %w", err)
	}
	logger.Debug("Book opened",
		logging.F("transactions", len(snap.Transactions)),
		logging.F("budgets", len(snap.Budgets)))
	return &Book{
		repo:         repo,
		logger:       logger,
		transactions: snap.Transactions,
		budgets:      snap.Budgets,
	}, nil
}

// Transactions returns a copy of all transactions, newest first
func (b *Book) Transactions() []models.Transaction {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneTransactions(b.transactions)
}

// Transaction returns the transaction with id
func (b *Book) Transaction(id string) (models.Transaction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.transactionIndex(id)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return b.transactions[i], nil
}

// AddTransaction validates tx, gives it a fresh id unless it carries an
// unused one, and records it ahead of every existing transaction.
func (b *Book) AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	added, err := b.ImportTransactions(ctx, []models.Transaction{tx})
	if err != nil {
		return models.Transaction{}, err
	}
	return added[0], nil
}

// ImportTransactions adds several transactions with a single write. Either
// all of them are recorded or none is.
func (b *Book) ImportTransactions(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]bool, len(b.transactions)+len(txs))
	for _, existing := range b.transactions {
		seen[existing.ID] = true
	}

	added := make([]models.Transaction, 0, len(txs))
	for i, tx := range txs {
		tx = normalizeTransaction(tx)
		if strings.TrimSpace(tx.ID) == "" || seen[tx.ID] {
			tx.ID = uuid.NewString()
		}
		if err := tx.Validate(); err != nil {
			if len(txs) == 1 {
				return nil, err
			}
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		seen[tx.ID] = true
		added = append(added, tx)
	}

	next := make([]models.Transaction, 0, len(added)+len(b.transactions))
	next = append(next, added...)
	next = append(next, b.transactions...)
	if err := b.commitTransactions(ctx, next); err != nil {
		return nil, err
	}

	for _, tx := range added {
		b.logger.Info("Transaction added",
			logging.F(logging.FieldTransactionID, tx.ID),
			logging.F(logging.FieldCategory, tx.Category))
	}
	return cloneTransactions(added), nil
}

// UpdateTransaction replaces every field of the transaction with id, keeping its id
func (b *Book) UpdateTransaction(ctx context.Context, id string, tx models.Transaction) (models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.transactionIndex(id)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	tx = normalizeTransaction(tx)
	tx.ID = id
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}

	next := cloneTransactions(b.transactions)
	next[i] = tx
	if err := b.commitTransactions(ctx, next); err != nil {
		return models.Transaction{}, err
	}
	b.logger.Info("Transaction updated", logging.F(logging.FieldTransactionID, id))
	return tx, nil
}

// DeleteTransaction removes the transaction with id
func (b *Book) DeleteTransaction(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.transactionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	next := make([]models.Transaction, 0, len(b.transactions)-1)
	next = append(next, b.transactions[:i]...)
	next = append(next, b.transactions[i+1:]...)
	if err := b.commitTransactions(ctx, next); err != nil {
		return err
	}
	b.logger.Info("Transaction deleted", logging.F(logging.FieldTransactionID, id))
	return nil
}

// Budgets returns a copy of all budgets
func (b *Book) Budgets() []models.Budget {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneBudgets(b.budgets)
}

// Budget returns the budget with id
func (b *Book) Budget(id string) (models.Budget, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.budgetIndex(id)
	if i < 0 {
		return models.Budget{}, fmt.Errorf("%w: %s", ErrBudgetNotFound, id)
	}
	return b.budgets[i], nil
}

// SetBudget records budget under a fresh id, replacing any budget of the
// same category and month.
func (b *Book) SetBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	budget = normalizeBudget(budget)
	budget.ID = uuid.NewString()
	if err := budget.Validate(); err != nil {
		return models.Budget{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.commitBudgets(ctx, ledger.UpsertBudget(b.budgets, budget)); err != nil {
		return models.Budget{}, err
	}
	b.logger.Info("Budget set",
		logging.F(logging.FieldBudgetID, budget.ID),
		logging.F(logging.FieldCategory, string(budget.Category)),
		logging.F(logging.FieldMonth, budget.Month))
	return budget, nil
}

// UpdateBudget replaces every field of the budget with id, keeping its id
// and position. Any other budget left sharing its category and month is dropped.
func (b *Book) UpdateBudget(ctx context.Context, id string, budget models.Budget) (models.Budget, error) {
	budget = normalizeBudget(budget)
	budget.ID = id
	if err := budget.Validate(); err != nil {
		return models.Budget{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.budgetIndex(id) < 0 {
		return models.Budget{}, fmt.Errorf("%w: %s", ErrBudgetNotFound, id)
	}

	next := make([]models.Budget, 0, len(b.budgets))
	dropped := 0
	for _, existing := range b.budgets {
		switch {
		case existing.ID == id:
			next = append(next, budget)
		case existing.SameSlot(budget):
			dropped++
		default:
			next = append(next, existing)
		}
	}
	if err := b.commitBudgets(ctx, next); err != nil {
		return models.Budget{}, err
	}
	b.logger.Info("Budget updated",
		logging.F(logging.FieldBudgetID, id),
		logging.F(logging.FieldCount, dropped))
	return budget, nil
}

// DeleteBudget removes the budget with id
func (b *Book) DeleteBudget(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.budgetIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBudgetNotFound, id)
	}
	next := make([]models.Budget, 0, len(b.budgets)-1)
	next = append(next, b.budgets[:i]...)
	next = append(next, b.budgets[i+1:]...)
	if err := b.commitBudgets(ctx, next); err != nil {
		return err
	}
	b.logger.Info("Budget deleted", logging.F(logging.FieldBudgetID, id))
	return nil
}

// commitTransactions persists next and adopts it; callers hold the write lock
func (b *Book) commitTransactions(ctx context.Context, next []models.Transaction) error {
	if err := b.repo.SaveTransactions(ctx, next); err != nil {
		b.logger.WithError(err).Error("Failed to persist transactions")
		return err
	}
	b.transactions = next
	return nil
}

// commitBudgets persists next and adopts it; callers hold the write lock
func (b *Book) commitBudgets(ctx context.Context, next []models.Budget) error {
	if err := b.repo.SaveBudgets(ctx, next); err != nil {
		b.logger.WithError(err).Error("Failed to persist budgets")
		return err
	}
	b.budgets = next
	return nil
}

// ResolveTransactionID expands ref, a full id or a unique id prefix, to a
// transaction id
func (b *Book) ResolveTransactionID(ref string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, len(b.transactions))
	for i, tx := range b.transactions {
		ids[i] = tx.ID
	}
	return resolveID(ids, ref, ErrTransactionNotFound)
}

// ResolveBudgetID expands ref, a full id or a unique id prefix, to a budget id
func (b *Book) ResolveBudgetID(ref string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, len(b.budgets))
	for i, budget := range b.budgets {
		ids[i] = budget.ID
	}
	return resolveID(ids, ref, ErrBudgetNotFound)
}

func resolveID(ids []string, ref string, notFound error) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", notFound)
	}
	var match string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", notFound, ref)
	}
	return match, nil
}

func (b *Book) transactionIndex(id string) int {
	for i, tx := range b.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (b *Book) budgetIndex(id string) int {
	for i, budget := range b.budgets {
		if budget.ID == id {
			return i
		}
	}
	return -1
}

func normalizeTransaction(tx models.Transaction) models.Transaction {
	tx.Description = strings.TrimSpace(tx.Description)
	tx.Date = strings.TrimSpace(tx.Date)
	if canonical, ok := models.CanonicalCategory(tx.Type, tx.Category); ok {
		tx.Category = canonical
	}
	return tx
}

func normalizeBudget(budget models.Budget) models.Budget {
	if cat, err := models.ParseExpenseCategory(string(budget.Category)); err == nil {
		budget.Category = cat
	}
	budget.Month = strings.TrimSpace(budget.Month)
	return budget
}

func cloneTransactions(in []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(in))
	copy(out, in)
	return out
}

func cloneBudgets(in []models.Budget) []models.Budget {
	out := make([]models.Budget, len(in))
	copy(out, in)
	return out
}
