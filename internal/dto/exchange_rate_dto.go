package dto

import (
	"time"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
)

// UpdateExchangeRatesRequest replaces both rate maps in one step.
type UpdateExchangeRatesRequest struct {
	EURRates    map[string]float64 `json:"eurRates" binding:"required,min=1,dive,keys,currency,endkeys,gt=0"`
	USDRates    map[string]float64 `json:"usdRates" binding:"required,min=1,dive,keys,currency,endkeys,gt=0"`
	BTCPriceEUR *float64           `json:"btcPriceEur,omitempty" binding:"omitempty,gt=0"`
	BTCPriceUSD *float64           `json:"btcPriceUsd,omitempty" binding:"omitempty,gt=0"`
}

// RatesResponse is the full rate store state plus the legacy projection.
type RatesResponse struct {
	RatesFromEUR   map[string]float64 `json:"ratesFromEUR"`
	RatesFromUSD   map[string]float64 `json:"ratesFromUSD"`
	BTCPriceEUR    float64            `json:"btcPriceEUR"`
	BTCPriceUSD    float64            `json:"btcPriceUSD"`
	Legacy         domain.LegacyRates `json:"legacy"`
	RatesUpdatedAt *time.Time         `json:"ratesUpdatedAt,omitempty"`
	PriceUpdatedAt *time.Time         `json:"priceUpdatedAt,omitempty"`
	FallbackCount  int64              `json:"fallbackCount"`
}

// ExchangeRateQuery selects the lookup mode of GET /rates/:from/:to. Lenient
// lookups never fail and answer 1 for pairs that cannot be resolved.
type ExchangeRateQuery struct {
	Lenient bool `form:"lenient"`
}

// ExchangeRateResponse is a single resolved rate.
type ExchangeRateResponse struct {
	FromCurrencyCode string  `json:"fromCurrencyCode"`
	ToCurrencyCode   string  `json:"toCurrencyCode"`
	Rate             float64 `json:"rate"`
	Lenient          bool    `json:"lenient,omitempty"`
}

// BTCPriceResponse is the BTC price in one currency.
type BTCPriceResponse struct {
	CurrencyCode string  `json:"currencyCode"`
	Price        float64 `json:"price"`
	Formatted    string  `json:"formatted"`
}

// ToRatesResponse converts a store snapshot into its API shape.
func ToRatesResponse(snap domain.RateSnapshot, legacy domain.LegacyRates, fallbacks int64) RatesResponse {
	resp := RatesResponse{
		RatesFromEUR:  toStringKeys(snap.RatesFromEUR),
		RatesFromUSD:  toStringKeys(snap.RatesFromUSD),
		BTCPriceEUR:   snap.BTCPriceEUR,
		BTCPriceUSD:   snap.BTCPriceUSD,
		Legacy:        legacy,
		FallbackCount: fallbacks,
	}
	if !snap.RatesUpdatedAt.IsZero() {
		t := snap.RatesUpdatedAt
		resp.RatesUpdatedAt = &t
	}
	if !snap.PriceUpdatedAt.IsZero() {
		t := snap.PriceUpdatedAt
		resp.PriceUpdatedAt = &t
	}
	return resp
}

// ToCurrencyRates converts request maps keyed by raw codes into currency maps.
// Codes are upper-cased; the binding layer already rejected unsupported ones.
func ToCurrencyRates(in map[string]float64) map[domain.Currency]float64 {
	out := make(map[domain.Currency]float64, len(in))
	for code, rate := range in {
		c, err := domain.ParseCurrency(code)
		if err != nil {
			c = domain.Currency(code)
		}
		out[c] = rate
	}
	return out
}

func toStringKeys(in map[domain.Currency]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
