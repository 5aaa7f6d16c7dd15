package services

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
)

// ConversionService converts amounts and value bundles between supported
// currencies using the rates held by the rate store.
type ConversionService struct {
	BaseService
	rates portssvc.RateReaderSvc
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rates portssvc.RateReaderSvc, logger *slog.Logger) *ConversionService {
	return &ConversionService{
		BaseService: BaseService{Logger: logger},
		rates:       rates,
	}
}

// IsSupported reports whether code names a supported currency, ignoring case.
func (s *ConversionService) IsSupported(code string) bool {
	return domain.IsSupportedCurrency(code)
}

// GetRate returns the strict rate between from and to.
func (s *ConversionService) GetRate(from, to string) (float64, error) {
	return s.rates.GetRate(from, to)
}

// Convert converts amount from one currency to another. The pair is checked
// first; NaN and infinite amounts then convert to 0.
func (s *ConversionService) Convert(amount float64, from, to string) (float64, error) {
	result, _, err := s.ConvertWithRate(amount, from, to)
	return result, err
}

// ConvertWithRate is Convert that also returns the rate it applied, taken from
// a single store lookup.
func (s *ConversionService) ConvertWithRate(amount float64, from, to string) (float64, float64, error) {
	rate, err := s.rates.GetRate(from, to)
	if err != nil {
		return 0, 0, err
	}
	return domain.SanitizeAmount(amount) * rate, rate, nil
}

// ConvertAmount is Convert for an optional amount; nil converts to 0.
func (s *ConversionService) ConvertAmount(amount *float64, from, to string) (float64, error) {
	if amount == nil {
		return s.Convert(0, from, to)
	}
	return s.Convert(*amount, from, to)
}

// ConvertValues converts price, cost and fee independently with the same rate
// and records that rate on the result.
func (s *ConversionService) ConvertValues(values domain.TransactionValues, from, to string) (domain.TransactionValues, error) {
	rate, err := s.rates.GetRate(from, to)
	if err != nil {
		return domain.TransactionValues{}, err
	}
	values.Price = domain.SanitizeAmount(values.Price)
	values.Cost = domain.SanitizeAmount(values.Cost)
	return values.Scale(rate), nil
}

// ComputeBaseValues fills the EUR and USD bundles of tx from its original values.
// Nothing is written unless both rates resolve.
func (s *ConversionService) ComputeBaseValues(tx *domain.Transaction) error {
	from := string(tx.Original.Currency)

	eurRate, err := s.rates.GetRate(from, string(domain.EUR))
	if err != nil {
		return fmt.Errorf("failed to compute EUR values for transaction %s: %w", tx.ID, err)
	}
	usdRate, err := s.rates.GetRate(from, string(domain.USD))
	if err != nil {
		return fmt.Errorf("failed to compute USD values for transaction %s: %w", tx.ID, err)
	}

	if err := tx.SetBaseValues(domain.BaseEUR, tx.Original.TransactionValues.Scale(eurRate)); err != nil {
		return err
	}
	return tx.SetBaseValues(domain.BaseUSD, tx.Original.TransactionValues.Scale(usdRate))
}

// AttachSecondary caches tx's values in currency. Base currencies are already
// cached and are left alone.
func (s *ConversionService) AttachSecondary(tx *domain.Transaction, currency string) error {
	target, err := domain.ParseCurrency(currency)
	if err != nil {
		return err
	}
	if target.IsBase() {
		return nil
	}

	rate, err := s.rates.GetRate(string(tx.Original.Currency), string(target))
	if err != nil {
		return fmt.Errorf("failed to attach %s values to transaction %s: %w", target, tx.ID, err)
	}
	tx.ConvertTo(target, rate)
	return nil
}
