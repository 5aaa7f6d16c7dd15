package repositories

import (
	"context"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
)

// RateProvider fetches exchange rates and the BTC price from an external source.
type RateProvider interface {
	// FetchRates returns base->X rates for every symbol.
	FetchRates(ctx context.Context, base domain.Currency, symbols []domain.Currency) (map[domain.Currency]float64, error)

	// FetchBTCPrice returns the BTC price in EUR and USD.
	FetchBTCPrice(ctx context.Context) (eur float64, usd float64, err error)
}
