package services

import (
	"context"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/SscSPs/btc_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for BTC transactions.
type TransactionReaderSvc interface {
	// GetTransaction returns a transaction and its values in currency.
	GetTransaction(ctx context.Context, transactionID string, currency string) (*domain.Transaction, domain.TransactionValues, error)

	// ListTransactions returns a page of transactions, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for BTC transactions.
type TransactionWriterSvc interface {
	// CreateTransaction validates, values and persists a new transaction.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// PortfolioSvc reports holdings and performance in a chosen currency.
type PortfolioSvc interface {
	// Summary aggregates all transactions into a portfolio view in currency.
	Summary(ctx context.Context, currency string) (*domain.PortfolioSummary, error)
}
