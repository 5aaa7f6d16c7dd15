package utils

import (
	"math"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.Info().Precision))
}

// FormatWithPrecision formats a float amount with the given number of decimals.
// Non-finite amounts format as zero.
func FormatWithPrecision(amount float64, precision int) string {
	return toDecimal(amount).StringFixed(int32(precision))
}

// FormatFloatWithCurrency prefixes the currency symbol to the amount rounded
// to the currency's precision, e.g. 57000 EUR -> "€57000.00".
func FormatFloatWithCurrency(amount float64, currency domain.Currency) string {
	info := currency.Info()
	return info.Symbol + FormatWithCurrencyPrecision(toDecimal(amount), currency)
}

// RoundToCurrency rounds amount half away from zero to the currency's precision.
func RoundToCurrency(amount float64, currency domain.Currency) float64 {
	f, _ := toDecimal(amount).Round(int32(currency.Info().Precision)).Float64()
	return f
}

func toDecimal(amount float64) decimal.Decimal {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount)
}
