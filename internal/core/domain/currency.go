package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
)

// Currency is a canonical (upper-case) 3-letter currency code from the supported set.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
	PLN Currency = "PLN"
	BRL Currency = "BRL"
	INR Currency = "INR"
)

// CurrencyInfo holds display metadata for a supported currency.
type CurrencyInfo struct {
	CurrencyCode Currency `json:"currencyCode"`
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Precision    int      `json:"precision"` // Decimal places shown to users, JPY has none
}

// supportedCurrencies is the closed set of currencies the rate store can resolve.
// Order is the order used for listings.
var supportedCurrencies = []CurrencyInfo{
	{CurrencyCode: EUR, Symbol: "€", Name: "Euro", Precision: 2},
	{CurrencyCode: USD, Symbol: "$", Name: "US Dollar", Precision: 2},
	{CurrencyCode: GBP, Symbol: "£", Name: "British Pound", Precision: 2},
	{CurrencyCode: JPY, Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	{CurrencyCode: CHF, Symbol: "CHF", Name: "Swiss Franc", Precision: 2},
	{CurrencyCode: PLN, Symbol: "zł", Name: "Polish Zloty", Precision: 2},
	{CurrencyCode: BRL, Symbol: "R$", Name: "Brazilian Real", Precision: 2},
	{CurrencyCode: INR, Symbol: "₹", Name: "Indian Rupee", Precision: 2},
}

var currencyIndex = func() map[Currency]CurrencyInfo {
	idx := make(map[Currency]CurrencyInfo, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		idx[c.CurrencyCode] = c
	}
	return idx
}()

// SupportedCurrencies returns the supported currency codes in listing order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	for i, c := range supportedCurrencies {
		out[i] = c.CurrencyCode
	}
	return out
}

// SupportedCurrencyInfos returns metadata for every supported currency.
func SupportedCurrencyInfos() []CurrencyInfo {
	out := make([]CurrencyInfo, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// normalizeCode trims and upper-cases a raw code.
func normalizeCode(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

// IsSupportedCurrency reports whether code (any case) is in the supported set.
func IsSupportedCurrency(code string) bool {
	_, ok := currencyIndex[normalizeCode(code)]
	return ok
}

// ParseCurrency normalizes code and checks it against the supported set.
func ParseCurrency(code string) (Currency, error) {
	c := normalizeCode(code)
	if _, ok := currencyIndex[c]; !ok {
		return "", fmt.Errorf("%w: currency %q is not supported", apperrors.ErrUnsupportedCurrencyPair, code)
	}
	return c, nil
}

// Info returns display metadata for c. Unknown currencies get precision 2.
func (c Currency) Info() CurrencyInfo {
	if info, ok := currencyIndex[c]; ok {
		return info
	}
	return CurrencyInfo{CurrencyCode: c, Symbol: string(c), Name: string(c), Precision: 2}
}

// IsBase reports whether c is one of the two anchor currencies.
func (c Currency) IsBase() bool {
	return c == EUR || c == USD
}

func (c Currency) String() string {
	return string(c)
}

// BaseKey identifies one of the two base value slots on a transaction.
// It is deliberately a different type from Currency so that arbitrary codes
// cannot be passed where only eur/usd is meaningful.
type BaseKey string

const (
	BaseEUR BaseKey = "eur"
	BaseUSD BaseKey = "usd"
)

// ParseBaseKey accepts only "eur" or "usd" (any case).
func ParseBaseKey(s string) (BaseKey, error) {
	switch BaseKey(strings.ToLower(strings.TrimSpace(s))) {
	case BaseEUR:
		return BaseEUR, nil
	case BaseUSD:
		return BaseUSD, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidBaseCurrency, s)
}

// Valid reports whether k is one of the two base keys.
func (k BaseKey) Valid() bool {
	return k == BaseEUR || k == BaseUSD
}

// Currency returns the currency the key stands for.
func (k BaseKey) Currency() Currency {
	switch k {
	case BaseEUR:
		return EUR
	case BaseUSD:
		return USD
	}
	return ""
}

// BaseKeyFor returns the base key for c, if c is a base currency.
func BaseKeyFor(c Currency) (BaseKey, bool) {
	switch c {
	case EUR:
		return BaseEUR, true
	case USD:
		return BaseUSD, true
	}
	return "", false
}
