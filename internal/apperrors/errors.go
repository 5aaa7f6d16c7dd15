package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnsupportedCurrencyPair indicates that a currency code is outside the supported set
// or that no rate can be resolved for the pair.
var ErrUnsupportedCurrencyPair = errors.New("unsupported currency pair")

// ErrNoValuesAvailable indicates that a transaction has no cached values for the requested currency.
var ErrNoValuesAvailable = errors.New("no values available for currency")

// ErrInvalidBaseCurrency indicates that a base value key other than eur/usd was given.
var ErrInvalidBaseCurrency = errors.New("invalid base currency")

// ErrPriceUnavailable indicates that the BTC price has not been fetched yet.
var ErrPriceUnavailable = errors.New("btc price not available")

// ErrRateSourceUnavailable indicates that the external rate source could not be reached.
var ErrRateSourceUnavailable = errors.New("rate source unavailable")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates a 400 AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewNotFoundError creates a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
