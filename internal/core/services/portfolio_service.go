package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// PortfolioService summarizes holdings and performance.
type PortfolioService struct {
	BaseService
	repo         portsrepo.TransactionReader
	rates        portssvc.RateReaderSvc
	conversion   portssvc.ConversionSvc
	mainCurrency domain.Currency
	now          func() time.Time
}

// PortfolioOption configures a PortfolioService.
type PortfolioOption func(*PortfolioService)

// WithClock overrides the time source used for AsOf.
func WithClock(now func() time.Time) PortfolioOption {
	return func(s *PortfolioService) {
		s.now = now
	}
}

// NewPortfolioService creates a new PortfolioService. mainCurrency is used
// when Summary is called without a currency.
func NewPortfolioService(
	repo portsrepo.TransactionReader,
	rates portssvc.RateReaderSvc,
	conversion portssvc.ConversionSvc,
	mainCurrency domain.Currency,
	logger *slog.Logger,
	opts ...PortfolioOption,
) *PortfolioService {
	s := &PortfolioService{
		BaseService:  BaseService{Logger: logger},
		repo:         repo,
		rates:        rates,
		conversion:   conversion,
		mainCurrency: mainCurrency,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary aggregates all transactions in currency and values the BTC still
// held at the current price.
func (s *PortfolioService) Summary(ctx context.Context, currency string) (*domain.PortfolioSummary, error) {
	if currency == "" {
		currency = string(s.mainCurrency)
	}
	target, err := domain.ParseCurrency(currency)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.ListAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	if !target.IsBase() {
		for i := range txs {
			if _, err := txs[i].GetValuesInCurrency(string(target)); err == nil {
				continue
			}
			if err := s.conversion.AttachSecondary(&txs[i], string(target)); err != nil {
				return nil, err
			}
		}
	}

	totals, err := accounting.AccumulateTotals(txs, string(target))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	price, err := s.rates.GetBTCPrice(string(target))
	if err != nil {
		return nil, err
	}

	held := totals.HeldBTC()
	value := held.Mul(decimal.NewFromFloat(price))
	unrealized := value.Sub(totals.CostBasis)
	pct := decimal.Zero
	if totals.CostBasis.IsPositive() {
		pct = unrealized.Div(totals.CostBasis).Mul(decimal.NewFromInt(100))
	}

	summary := &domain.PortfolioSummary{
		Currency:         target,
		TotalBTC:         held.InexactFloat64(),
		BTCBought:        totals.BTCBought.InexactFloat64(),
		BTCSold:          totals.BTCSold.InexactFloat64(),
		TotalInvested:    totals.Invested.InexactFloat64(),
		TotalProceeds:    totals.Proceeds.InexactFloat64(),
		TotalFees:        totals.Fees.InexactFloat64(),
		CostBasis:        totals.CostBasis.InexactFloat64(),
		AverageBuyPrice:  totals.AverageBuyPrice().InexactFloat64(),
		CurrentPrice:     price,
		CurrentValue:     value.InexactFloat64(),
		UnrealizedPnL:    unrealized.InexactFloat64(),
		UnrealizedPnLPct: pct.InexactFloat64(),
		RealizedPnL:      totals.RealizedPnL.InexactFloat64(),
		TransactionCount: totals.Count,
		AsOf:             s.now().UTC(),
	}

	s.LogDebug(ctx, "Portfolio summary computed",
		slog.String("currency", string(target)),
		slog.Int("transactions", totals.Count),
	)
	return summary, nil
}
