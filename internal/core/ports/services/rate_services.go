package services

import (
	"context"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
)

// RateReaderSvc defines read operations on the in-process rate store.
type RateReaderSvc interface {
	// GetRate returns the strict rate between two supported currencies.
	GetRate(from, to string) (float64, error)

	// GetExchangeRateOrDefault returns the rate or 1 when it cannot be resolved.
	GetExchangeRateOrDefault(from, to string) float64

	// GetBTCPrice returns the BTC price expressed in currency.
	GetBTCPrice(currency string) (float64, error)

	// Snapshot returns a copy of the current rates and BTC prices.
	Snapshot() domain.RateSnapshot

	// LegacyRates returns the flat EUR->X projection.
	LegacyRates() domain.LegacyRates

	// FallbackCount returns how often the lenient lookup fell back to 1.
	FallbackCount() int64
}

// RateWriterSvc defines the inbound side used by the rate refresher.
type RateWriterSvc interface {
	// UpdateExchangeRates atomically replaces both rate maps.
	UpdateExchangeRates(eurRates, usdRates map[domain.Currency]float64) error

	// SetBTCPrice sets the EUR and (optional, <= 0 for absent) USD BTC price.
	SetBTCPrice(eur, usd float64) error
}

// RateStoreSvcFacade combines read and write access to the rate store.
type RateStoreSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}

// RateRefresherSvc pulls fresh rates from the configured source into the store.
type RateRefresherSvc interface {
	// Refresh fetches rates and BTC price and applies them. On error the store is untouched.
	Refresh(ctx context.Context) error

	// Start runs Refresh on a cron schedule.
	Start(schedule string) error

	// Stop halts the schedule, waiting for a running refresh up to ctx.
	Stop(ctx context.Context) error
}
