package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
)

// TransactionReader defines read operations for stored transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves up to limit transactions ordered by date desc,
	// starting strictly before the (date, id) cursor when it is non-zero.
	ListTransactions(ctx context.Context, limit int, beforeDate time.Time, beforeID string) ([]domain.Transaction, error)

	// ListAllTransactions retrieves every stored transaction.
	ListAllTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for stored transactions.
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction.
	SaveTransaction(ctx context.Context, tx domain.Transaction) error

	// UpdateSecondaryValues replaces the cached secondary bundle of a transaction.
	UpdateSecondaryValues(ctx context.Context, transactionID string, secondary *domain.SecondaryValues) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
