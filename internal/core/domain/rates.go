package domain

import "time"

// RateSnapshot is a point-in-time copy of the rate store's state.
type RateSnapshot struct {
	RatesFromEUR   map[Currency]float64 `json:"ratesFromEUR"`
	RatesFromUSD   map[Currency]float64 `json:"ratesFromUSD"`
	BTCPriceEUR    float64              `json:"btcPriceEUR"`
	BTCPriceUSD    float64              `json:"btcPriceUSD"`
	RatesUpdatedAt time.Time            `json:"ratesUpdatedAt"`
	PriceUpdatedAt time.Time            `json:"priceUpdatedAt"`
}

// LegacyRates is the flat, one-field-per-currency view of the EUR rates that
// older consumers read. It is derived on every call and never stored.
type LegacyRates struct {
	EURToUSD float64 `json:"eurToUsd"`
	EURToGBP float64 `json:"eurToGbp"`
	EURToJPY float64 `json:"eurToJpy"`
	EURToCHF float64 `json:"eurToChf"`
	EURToPLN float64 `json:"eurToPln"`
	EURToBRL float64 `json:"eurToBrl"`
	EURToINR float64 `json:"eurToInr"`
}

// ProjectLegacyRates maps EUR->X rates onto the legacy fields. Missing rates stay 0.
func ProjectLegacyRates(ratesFromEUR map[Currency]float64) LegacyRates {
	return LegacyRates{
		EURToUSD: ratesFromEUR[USD],
		EURToGBP: ratesFromEUR[GBP],
		EURToJPY: ratesFromEUR[JPY],
		EURToCHF: ratesFromEUR[CHF],
		EURToPLN: ratesFromEUR[PLN],
		EURToBRL: ratesFromEUR[BRL],
		EURToINR: ratesFromEUR[INR],
	}
}
