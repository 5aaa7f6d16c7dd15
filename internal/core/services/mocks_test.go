package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/btc_tracker/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit int, beforeDate time.Time, beforeID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, limit, beforeDate, beforeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateSecondaryValues(ctx context.Context, transactionID string, secondary *domain.SecondaryValues) error {
	args := m.Called(ctx, transactionID, secondary)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

var _ portsrepo.RateProvider = (*MockRateProvider)(nil)

func (m *MockRateProvider) FetchRates(ctx context.Context, base domain.Currency, symbols []domain.Currency) (map[domain.Currency]float64, error) {
	args := m.Called(ctx, base, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Currency]float64), args.Error(1)
}

func (m *MockRateProvider) FetchBTCPrice(ctx context.Context) (float64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func testRatesFromEUR() map[domain.Currency]float64 {
	return map[domain.Currency]float64{
		domain.USD: 1.14,
		domain.GBP: 0.85,
		domain.JPY: 164,
		domain.CHF: 0.95,
		domain.PLN: 4.3,
		domain.BRL: 6.2,
		domain.INR: 95,
	}
}

func testRatesFromUSD() map[domain.Currency]float64 {
	return map[domain.Currency]float64{
		domain.EUR: 0.877,
		domain.GBP: 0.746,
		domain.JPY: 143.9,
		domain.CHF: 0.833,
		domain.PLN: 3.77,
		domain.BRL: 5.44,
		domain.INR: 83.3,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// seededStore returns a store holding the test rates and a BTC price of 50000 EUR.
func seededStore(t *testing.T) *services.RateStore {
	t.Helper()
	store := services.NewRateStore(discardLogger())
	require.NoError(t, store.UpdateExchangeRates(testRatesFromEUR(), testRatesFromUSD()))
	require.NoError(t, store.SetBTCPrice(50000, 0))
	return store
}
