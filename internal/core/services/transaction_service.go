package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/dto"
	"github.com/SscSPs/btc_tracker/internal/utils/pagination"
)

const defaultPageSize = 20

// TransactionService values, stores and retrieves BTC transactions.
type TransactionService struct {
	BaseService
	repo       portsrepo.TransactionRepositoryFacade
	conversion portssvc.ConversionSvc
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, conversion portssvc.ConversionSvc, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		BaseService: BaseService{Logger: logger},
		repo:        repo,
		conversion:  conversion,
	}
}

// CreateTransaction builds a transaction from req, computes its base values
// unless the request already carries them, validates and persists it.
func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if !s.conversion.IsSupported(req.Currency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, req.Currency)
	}

	tx := domain.NewTransaction(req.ToTransactionInput(creatorUserID))
	if !tx.HasBaseValues() {
		if err := s.conversion.ComputeBaseValues(tx); err != nil {
			s.LogError(ctx, err, "Failed to compute base values", slog.String("currency", req.Currency))
			return nil, err
		}
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveTransaction(ctx, *tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", tx.ID),
		slog.String("type", string(tx.Type)),
		slog.Float64("btc_amount", tx.BTCAmount),
	)
	return tx, nil
}

// GetTransaction returns the transaction and its values in currency. An empty
// currency means the entry currency. Values for a currency that is neither the
// entry currency nor a base one are computed once and stored as the secondary bundle.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string, currency string) (*domain.Transaction, domain.TransactionValues, error) {
	tx, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, domain.TransactionValues{}, err
	}

	if currency == "" {
		currency = string(tx.Original.Currency)
	}
	target, err := domain.ParseCurrency(currency)
	if err != nil {
		return nil, domain.TransactionValues{}, err
	}

	values, err := tx.GetValuesInCurrency(string(target))
	if err == nil {
		return tx, values, nil
	}
	if !errors.Is(err, apperrors.ErrNoValuesAvailable) || target.IsBase() {
		return nil, domain.TransactionValues{}, err
	}

	if err := s.conversion.AttachSecondary(tx, string(target)); err != nil {
		return nil, domain.TransactionValues{}, err
	}
	if err := s.repo.UpdateSecondaryValues(ctx, tx.ID, tx.Secondary); err != nil {
		// The values are still correct for this response.
		s.LogError(ctx, err, "Failed to persist secondary values", slog.String("transaction_id", tx.ID))
	}

	values, err = tx.GetValuesInCurrency(string(target))
	if err != nil {
		return nil, domain.TransactionValues{}, err
	}
	return tx, values, nil
}

// ListTransactions returns a page of transactions, newest first, plus the token
// of the next page when there may be one. When params.Currency is set, values
// missing in that currency are attached in memory only.
func (s *TransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	cursor, err := pagination.DecodeToken(params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	txs, err := s.repo.ListTransactions(ctx, limit, cursor.Date, cursor.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if params.Currency != "" {
		for i := range txs {
			if _, err := txs[i].GetValuesInCurrency(params.Currency); err == nil {
				continue
			}
			if err := s.conversion.AttachSecondary(&txs[i], params.Currency); err != nil {
				s.LogWarn(ctx, "Could not attach display currency", slog.String("transaction_id", txs[i].ID), slog.String("error", err.Error()))
			}
		}
	}

	var next *string
	if len(txs) > 0 {
		last := txs[len(txs)-1]
		next = pagination.NextToken(len(txs), limit, pagination.Cursor{Date: last.Date, ID: last.ID})
	}
	return txs, next, nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.repo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
