package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

// CorruptSuffix names the key under which the first unreadable copy of a
// collection is kept, e.g. "transactions.corrupt"
const CorruptSuffix = ".corrupt"

// Repository reads and writes the two ledger collections through a Provider
type Repository struct {
	provider Provider
	logger   logging.Logger
}

// Snapshot is the full persisted state
type Snapshot struct {
	Transactions []models.Transaction
	Budgets      []models.Budget
}

// NewRepository wraps provider
func NewRepository(provider Provider, logger logging.Logger) *Repository {
	return &Repository{provider: provider, logger: logger}
}

// LoadTransactions returns the stored transactions. A missing or malformed
// blob yields an empty list; only provider failures are errors.
func (r *Repository) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	return loadList[models.Transaction](ctx, r, models.KeyTransactions)
}

// LoadBudgets returns the stored budgets, with the same fallbacks as LoadTransactions
func (r *Repository) LoadBudgets(ctx context.Context) ([]models.Budget, error) {
	return loadList[models.Budget](ctx, r, models.KeyBudgets)
}

// LoadAll reads both collections concurrently
func (r *Repository) LoadAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := r.LoadTransactions(gctx)
		snap.Transactions = txs
		return err
	})
	g.Go(func() error {
		budgets, err := r.LoadBudgets(gctx)
		snap.Budgets = budgets
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// SaveTransactions replaces the stored transactions
func (r *Repository) SaveTransactions(ctx context.Context, txs []models.Transaction) error {
	if txs == nil {
		txs = []models.Transaction{}
	}
	return r.save(ctx, models.KeyTransactions, txs, len(txs))
}

// SaveBudgets replaces the stored budgets
func (r *Repository) SaveBudgets(ctx context.Context, budgets []models.Budget) error {
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return r.save(ctx, models.KeyBudgets, budgets, len(budgets))
}

// Close closes the provider
func (r *Repository) Close() error {
	return r.provider.Close()
}

func loadList[T any](ctx context.Context, r *Repository, key string) ([]T, error) {
	blob, err := r.provider.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		r.logger.Debug("No stored data, starting empty", logging.F(logging.FieldKey, key))
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		corrupt := &parsererror.CorruptDataError{Key: key, Err: err}
		r.logger.WithError(corrupt).Warn("Ignoring malformed stored data",
			logging.F(logging.FieldKey, key),
			logging.F(logging.FieldPreservedAs, r.preserveCorrupt(ctx, key, blob)))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	r.logger.Debug("Loaded collection",
		logging.F(logging.FieldKey, key),
		logging.F(logging.FieldCount, len(items)))
	return items, nil
}

// preserveCorrupt keeps the unreadable blob under key+CorruptSuffix unless an
// earlier copy is already there, and returns that key. The next save replaces
// the original, so this copy is what remains for manual recovery.
func (r *Repository) preserveCorrupt(ctx context.Context, key string, blob []byte) string {
	copyKey := key + CorruptSuffix
	_, err := r.provider.Load(ctx, copyKey)
	if err == nil {
		return copyKey
	}
	if !errors.Is(err, ErrNotFound) {
		r.logger.WithError(err).Warn("Could not check for a kept copy of malformed data",
			logging.F(logging.FieldKey, copyKey))
		return ""
	}
	if err := r.provider.Save(ctx, copyKey, blob); err != nil {
		r.logger.WithError(err).Warn("Could not keep a copy of malformed data",
			logging.F(logging.FieldKey, copyKey))
		return ""
	}
	return copyKey
}

func (r *Repository) save(ctx context.Context, key string, v interface{}, count int) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", key, err)
	}
	if err := r.provider.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	r.logger.Debug("Persisted collection",
		logging.F(logging.FieldKey, key),
		logging.F(logging.FieldCount, count))
	return nil
}
