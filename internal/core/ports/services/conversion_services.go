package services

import "github.com/SscSPs/btc_tracker/internal/core/domain"

// ConversionSvc turns rate lookups into currency-aware arithmetic.
type ConversionSvc interface {
	// IsSupported reports whether code (any case) can be converted.
	IsSupported(code string) bool

	// GetRate returns the strict rate between two supported currencies.
	GetRate(from, to string) (float64, error)

	// Convert converts a scalar amount. Non-finite amounts convert to 0.
	Convert(amount float64, from, to string) (float64, error)

	// ConvertWithRate converts a scalar amount and returns the rate it applied.
	ConvertWithRate(amount float64, from, to string) (float64, float64, error)

	// ConvertAmount converts an optional amount; nil converts to 0.
	ConvertAmount(amount *float64, from, to string) (float64, error)

	// ConvertValues converts price, cost and fee with one rate.
	ConvertValues(values domain.TransactionValues, from, to string) (domain.TransactionValues, error)

	// ComputeBaseValues fills both base bundles of tx from its original values.
	ComputeBaseValues(tx *domain.Transaction) error

	// AttachSecondary caches tx's values in currency (no-op for base currencies).
	AttachSecondary(tx *domain.Transaction, currency string) error
}
