package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
)

// TransactionRepository keeps transactions in process memory. It stores
// snapshots so callers never share state with the repository.
type TransactionRepository struct {
	mu   sync.RWMutex
	rows map[string]domain.TransactionSnapshot
}

// NewTransactionRepository creates an empty repository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{rows: make(map[string]domain.TransactionSnapshot)}
}

// NewRepositoryProvider wires the in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewTransactionRepository(),
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// SaveTransaction inserts a new transaction.
func (r *TransactionRepository) SaveTransaction(_ context.Context, tx domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[tx.ID]; exists {
		return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, tx.ID)
	}
	r.rows[tx.ID] = tx.ToSnapshot()
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *TransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.rows[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction with ID " + transactionID + " not found")
	}
	return domain.FromSnapshot(s), nil
}

// ListTransactions retrieves a page ordered by date desc with the ID as tie-breaker.
func (r *TransactionRepository) ListTransactions(_ context.Context, limit int, beforeDate time.Time, beforeID string) ([]domain.Transaction, error) {
	all := r.sorted(true)

	out := make([]domain.Transaction, 0, limit)
	for _, tx := range all {
		if beforeID != "" && !isBefore(tx, beforeDate, beforeID) {
			continue
		}
		out = append(out, tx)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListAllTransactions retrieves every transaction, oldest first.
func (r *TransactionRepository) ListAllTransactions(_ context.Context) ([]domain.Transaction, error) {
	return r.sorted(false), nil
}

// UpdateSecondaryValues replaces the cached secondary bundle of a transaction.
func (r *TransactionRepository) UpdateSecondaryValues(_ context.Context, transactionID string, secondary *domain.SecondaryValues) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rows[transactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction with ID " + transactionID + " not found")
	}
	if secondary == nil {
		s.Secondary = nil
	} else {
		sec := *secondary
		s.Secondary = &sec
	}
	s.LastUpdatedAt = time.Now().UTC()
	r.rows[transactionID] = s
	return nil
}

// DeleteTransaction removes a transaction.
func (r *TransactionRepository) DeleteTransaction(_ context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[transactionID]; !ok {
		return apperrors.NewNotFoundError("transaction with ID " + transactionID + " not found")
	}
	delete(r.rows, transactionID)
	return nil
}

func (r *TransactionRepository) sorted(desc bool) []domain.Transaction {
	r.mu.RLock()
	out := make([]domain.Transaction, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, *domain.FromSnapshot(s))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			if desc {
				return a.Date.After(b.Date)
			}
			return a.Date.Before(b.Date)
		}
		if desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
	return out
}

// isBefore reports whether tx sorts after the (date, id) cursor in descending order.
func isBefore(tx domain.Transaction, date time.Time, id string) bool {
	if tx.Date.Equal(date) {
		return tx.ID < id
	}
	return tx.Date.Before(date)
}
