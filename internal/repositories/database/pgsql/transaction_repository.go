package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/btc_tracker/internal/models"
	"github.com/SscSPs/btc_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `
	transaction_id, txn_type, btc_amount, txn_date, exchange, tx_kind, status, notes,
	original, base, secondary,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxTransactionRepository stores BTC transactions in Postgres. Value bundles
// live in JSONB columns exactly as computed.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new PgxTransactionRepository.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(&tx)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.TxnType, m.BTCAmount, m.TxnDate, m.Exchange, m.TxKind, m.Status, m.Notes,
		m.Original, m.Base, m.Secondary,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to save transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction with ID " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get transaction by ID", err)
	}
	return mapping.ToDomainTransaction(m), nil
}

// ListTransactions retrieves a page ordered by date desc with the ID as tie-breaker.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, beforeDate time.Time, beforeID string) ([]domain.Transaction, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if beforeID == "" {
		query := `SELECT ` + transactionColumns + ` FROM transactions
			ORDER BY txn_date DESC, transaction_id DESC
			LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, limit)
	} else {
		// Tuple comparison keeps the cursor stable across equal dates.
		query := `SELECT ` + transactionColumns + ` FROM transactions
			WHERE (txn_date, transaction_id) < ($1, $2)
			ORDER BY txn_date DESC, transaction_id DESC
			LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, beforeDate, beforeID, limit)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	return collectTransactions(rows)
}

// ListAllTransactions retrieves every transaction, oldest first.
func (r *PgxTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY txn_date, transaction_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	return collectTransactions(rows)
}

// UpdateSecondaryValues replaces the cached secondary bundle of a transaction.
func (r *PgxTransactionRepository) UpdateSecondaryValues(ctx context.Context, transactionID string, secondary *domain.SecondaryValues) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx, `SELECT transaction_id FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("transaction with ID " + transactionID + " not found")
			}
			return apperrors.NewAppError(500, "failed to lock transaction", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE transactions
			SET secondary = $1, last_updated_at = $2
			WHERE transaction_id = $3;`,
			mapping.ToModelSecondary(secondary), time.Now().UTC(), transactionID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update secondary values", err)
		}
		return nil
	})
}

// DeleteTransaction removes a transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction with ID " + transactionID + " not found")
	}
	return nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.TxnType, &m.BTCAmount, &m.TxnDate, &m.Exchange, &m.TxKind, &m.Status, &m.Notes,
		&m.Original, &m.Base, &m.Secondary,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transactions", err)
	}
	return mapping.ToDomainTransactions(ms), nil
}
