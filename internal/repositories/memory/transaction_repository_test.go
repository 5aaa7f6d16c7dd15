package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositoryTestSuite struct {
	suite.Suite
	repo *TransactionRepository
	ctx  context.Context
}

func (suite *TransactionRepositoryTestSuite) SetupTest() {
	suite.repo = NewTransactionRepository()
	suite.ctx = context.Background()
}

func newTx(id, date string) domain.Transaction {
	tx := domain.NewTransaction(domain.TransactionInput{
		ID:        id,
		Type:      "buy",
		BTCAmount: 0.1,
		Date:      date,
		Currency:  "EUR",
		Price:     30000,
		Cost:      3000,
	})
	_ = tx.SetBaseValues(domain.BaseEUR, domain.TransactionValues{Price: 30000, Cost: 3000, Rate: 1})
	return *tx
}

func (suite *TransactionRepositoryTestSuite) TestSaveAndFind() {
	tx := newTx("a", "2024-01-01")
	suite.Require().NoError(suite.repo.SaveTransaction(suite.ctx, tx))

	err := suite.repo.SaveTransaction(suite.ctx, tx)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	found, err := suite.repo.FindTransactionByID(suite.ctx, "a")
	suite.Require().NoError(err)
	suite.Equal(tx.Original, found.Original)

	// Mutating the returned entity does not leak into storage.
	found.ConvertTo(domain.GBP, 0.85)
	again, err := suite.repo.FindTransactionByID(suite.ctx, "a")
	suite.Require().NoError(err)
	suite.Nil(again.Secondary)

	_, err = suite.repo.FindTransactionByID(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionRepositoryTestSuite) TestListTransactions_Pagination() {
	// Two transactions share a date to exercise the ID tie-breaker.
	for i, date := range []string{"2024-01-01", "2024-02-01", "2024-02-01", "2024-03-01", "2024-04-01"} {
		suite.Require().NoError(suite.repo.SaveTransaction(suite.ctx, newTx(fmt.Sprintf("tx-%d", i), date)))
	}

	page1, err := suite.repo.ListTransactions(suite.ctx, 2, time.Time{}, "")
	suite.Require().NoError(err)
	suite.Require().Len(page1, 2)
	suite.Equal("tx-4", page1[0].ID)
	suite.Equal("tx-3", page1[1].ID)

	last := page1[1]
	page2, err := suite.repo.ListTransactions(suite.ctx, 2, last.Date, last.ID)
	suite.Require().NoError(err)
	suite.Require().Len(page2, 2)
	suite.Equal("tx-2", page2[0].ID)
	suite.Equal("tx-1", page2[1].ID)

	last = page2[1]
	page3, err := suite.repo.ListTransactions(suite.ctx, 2, last.Date, last.ID)
	suite.Require().NoError(err)
	suite.Require().Len(page3, 1)
	suite.Equal("tx-0", page3[0].ID)

	all, err := suite.repo.ListAllTransactions(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 5)
	suite.Equal("tx-0", all[0].ID)
}

func (suite *TransactionRepositoryTestSuite) TestUpdateSecondaryValues() {
	suite.Require().NoError(suite.repo.SaveTransaction(suite.ctx, newTx("a", "2024-01-01")))

	sec := &domain.SecondaryValues{Currency: domain.GBP, TransactionValues: domain.TransactionValues{Price: 25500, Cost: 2550, Rate: 0.85}}
	suite.Require().NoError(suite.repo.UpdateSecondaryValues(suite.ctx, "a", sec))
	sec.Price = 1

	found, err := suite.repo.FindTransactionByID(suite.ctx, "a")
	suite.Require().NoError(err)
	suite.Require().NotNil(found.Secondary)
	suite.Equal(25500.0, found.Secondary.Price)

	err = suite.repo.UpdateSecondaryValues(suite.ctx, "missing", sec)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionRepositoryTestSuite) TestDeleteTransaction() {
	suite.Require().NoError(suite.repo.SaveTransaction(suite.ctx, newTx("a", "2024-01-01")))
	suite.Require().NoError(suite.repo.DeleteTransaction(suite.ctx, "a"))
	suite.ErrorIs(suite.repo.DeleteTransaction(suite.ctx, "a"), apperrors.ErrNotFound)
}

func TestTransactionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func TestNewRepositoryProvider(t *testing.T) {
	provider := NewRepositoryProvider()
	require.NotNil(t, provider.TransactionRepo)
	txs, err := provider.TransactionRepo.ListAllTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}
