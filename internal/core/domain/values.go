package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionValues describes what a transaction is worth in a single currency.
// Price is the BTC unit price, Cost the amount paid/received, Fee the fee charged
// and Rate the conversion rate that produced the bundle (1 in its native currency).
type TransactionValues struct {
	Price float64 `json:"price"`
	Cost  float64 `json:"cost"`
	Fee   float64 `json:"fee"`
	Rate  float64 `json:"rate"`
}

// Normalize defaults a missing rate to 1 and a non-finite fee to 0.
func (v TransactionValues) Normalize() TransactionValues {
	if !isFinite(v.Fee) {
		v.Fee = 0
	}
	if !isFinite(v.Rate) || v.Rate <= 0 {
		v.Rate = 1
	}
	return v
}

// Scale multiplies price, cost and fee by rate independently and records rate.
func (v TransactionValues) Scale(rate float64) TransactionValues {
	fee := v.Fee
	if !isFinite(fee) {
		fee = 0
	}
	return TransactionValues{
		Price: v.Price * rate,
		Cost:  v.Cost * rate,
		Fee:   fee * rate,
		Rate:  rate,
	}
}

// OriginalValues is the bundle exactly as the user entered it, with its currency.
type OriginalValues struct {
	Currency Currency `json:"currency"`
	TransactionValues
}

// BaseValues caches a transaction's worth in both base currencies.
type BaseValues struct {
	EUR TransactionValues `json:"eur"`
	USD TransactionValues `json:"usd"`
}

// SecondaryValues is an optional extra display currency bundle.
type SecondaryValues struct {
	Currency Currency `json:"currency"`
	TransactionValues
}

// ParseAmount leniently parses a user-entered number. Thousands separators and
// surrounding whitespace are tolerated; anything unparsable yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SanitizeAmount maps NaN and infinities to 0 and passes everything else through.
func SanitizeAmount(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}
