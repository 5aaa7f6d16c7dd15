package services

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
)

// RateStore holds the latest exchange rates anchored at EUR and USD and the
// current BTC price. Both rate maps and both BTC prices are swapped under a
// single write lock so readers never see a half-applied update.
type RateStore struct {
	mu           sync.RWMutex
	ratesFromEUR map[domain.Currency]float64
	ratesFromUSD map[domain.Currency]float64
	btcPriceEUR  float64
	btcPriceUSD  float64
	ratesAt      time.Time
	priceAt      time.Time

	fallbacks atomic.Int64
	logger    *slog.Logger
}

// NewRateStore creates an empty store. A nil logger falls back to slog.Default().
func NewRateStore(logger *slog.Logger) *RateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateStore{
		ratesFromEUR: map[domain.Currency]float64{},
		ratesFromUSD: map[domain.Currency]float64{},
		logger:       logger,
	}
}

// UpdateExchangeRates replaces both rate maps. The maps must contain every
// currency that should remain resolvable; entries are not merged with the
// previous state. Invalid input is rejected and the previous rates are kept.
func (s *RateStore) UpdateExchangeRates(eurRates, usdRates map[domain.Currency]float64) error {
	eur, err := sanitizeRates(domain.EUR, eurRates)
	if err != nil {
		return err
	}
	usd, err := sanitizeRates(domain.USD, usdRates)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ratesFromEUR = eur
	s.ratesFromUSD = usd
	s.ratesAt = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info("Exchange rates updated", slog.Int("eur_rates", len(eur)), slog.Int("usd_rates", len(usd)))
	return nil
}

func sanitizeRates(base domain.Currency, in map[domain.Currency]float64) (map[domain.Currency]float64, error) {
	out := make(map[domain.Currency]float64, len(in))
	for code, rate := range in {
		c, err := domain.ParseCurrency(string(code))
		if err != nil {
			return nil, fmt.Errorf("%w: %s rates contain unsupported currency %q", apperrors.ErrValidation, base, code)
		}
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
			return nil, fmt.Errorf("%w: %s->%s rate must be a positive finite number, got %v", apperrors.ErrValidation, base, c, rate)
		}
		if c == base {
			continue
		}
		out[c] = rate
	}
	return out, nil
}

// SetBTCPrice sets both BTC prices together. A usd value <= 0 marks the USD
// price as absent so it is derived from the EUR price on read.
func (s *RateStore) SetBTCPrice(eur, usd float64) error {
	if err := validateBTCPriceEUR(eur); err != nil {
		return err
	}
	if math.IsNaN(usd) || math.IsInf(usd, 0) || usd < 0 {
		usd = 0
	}

	s.mu.Lock()
	s.btcPriceEUR = eur
	s.btcPriceUSD = usd
	s.priceAt = time.Now().UTC()
	s.mu.Unlock()
	return nil
}

func validateBTCPriceEUR(eur float64) error {
	if math.IsNaN(eur) || math.IsInf(eur, 0) || eur <= 0 {
		return fmt.Errorf("%w: btc price in EUR must be a positive finite number, got %v", apperrors.ErrValidation, eur)
	}
	return nil
}

// SetBTCPriceEUR sets the authoritative EUR price and clears the USD one.
func (s *RateStore) SetBTCPriceEUR(eur float64) error {
	return s.SetBTCPrice(eur, 0)
}

// GetRate returns how many units of `to` one unit of `from` is worth.
// It fails with ErrUnsupportedCurrencyPair when either code is unknown or the
// rate cannot be resolved from the current maps.
func (s *RateStore) GetRate(from, to string) (float64, error) {
	f, t, err := parsePair(from, to)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(f, t)
}

func parsePair(from, to string) (domain.Currency, domain.Currency, error) {
	f, err := domain.ParseCurrency(from)
	if err != nil {
		return "", "", fmt.Errorf("%w (%s->%s)", err, from, to)
	}
	t, err := domain.ParseCurrency(to)
	if err != nil {
		return "", "", fmt.Errorf("%w (%s->%s)", err, from, to)
	}
	return f, t, nil
}

// resolveLocked must be called with at least the read lock held.
func (s *RateStore) resolveLocked(from, to domain.Currency) (float64, error) {
	if from == to {
		return 1, nil
	}

	rate, ok := 0.0, false
	switch {
	case from.IsBase():
		rate, ok = s.fromBaseLocked(from, to)
	case to.IsBase():
		var inv float64
		inv, ok = s.fromBaseLocked(to, from)
		if ok {
			rate = 1 / inv
		}
	default:
		rate, ok = s.crossLocked(from, to)
	}

	if !ok {
		return 0, fmt.Errorf("%w: no rate available for %s->%s", apperrors.ErrUnsupportedCurrencyPair, from, to)
	}
	return rate, nil
}

// fromBaseLocked returns base->to, falling back to a cross through the other base.
func (s *RateStore) fromBaseLocked(base, to domain.Currency) (float64, bool) {
	direct, other := s.ratesFromEUR, s.ratesFromUSD
	otherBase := domain.USD
	if base == domain.USD {
		direct, other = s.ratesFromUSD, s.ratesFromEUR
		otherBase = domain.EUR
	}

	if r, ok := direct[to]; ok {
		return r, true
	}

	// base->to = (base->otherBase) * (otherBase->to)
	baseToOther, ok := direct[otherBase]
	if !ok {
		if inv, invOK := other[base]; invOK {
			baseToOther, ok = 1/inv, true
		}
	}
	if !ok {
		return 0, false
	}
	if to == otherBase {
		return baseToOther, true
	}
	otherToTarget, ok := other[to]
	if !ok {
		return 0, false
	}
	return baseToOther * otherToTarget, true
}

// crossLocked composes from->EUR->to, or from->USD->to when EUR entries are missing.
func (s *RateStore) crossLocked(from, to domain.Currency) (float64, bool) {
	if fr, ok := s.ratesFromEUR[from]; ok {
		if tr, ok := s.ratesFromEUR[to]; ok {
			return (1 / fr) * tr, true
		}
	}
	if fr, ok := s.ratesFromUSD[from]; ok {
		if tr, ok := s.ratesFromUSD[to]; ok {
			return (1 / fr) * tr, true
		}
	}
	return 0, false
}

// GetExchangeRateOrDefault is the lenient lookup kept for callers that must
// keep rendering while rates are being refreshed. When GetRate fails it returns
// 1. Each fallback is logged and counted; see FallbackCount. The legacy
// projection mirrors the EUR map GetRate already searched, so it is not consulted.
func (s *RateStore) GetExchangeRateOrDefault(from, to string) float64 {
	rate, err := s.GetRate(from, to)
	if err == nil {
		return rate
	}

	n := s.fallbacks.Add(1)
	s.logger.Warn("exchange rate fallback",
		slog.String("from", from),
		slog.String("to", to),
		slog.Int64("fallback_count", n),
		slog.String("error", err.Error()),
	)
	return 1
}

// FallbackCount returns how many times GetExchangeRateOrDefault returned the
// identity fallback since the store was created.
func (s *RateStore) FallbackCount() int64 {
	return s.fallbacks.Load()
}

// GetBTCPrice returns the BTC price in currency.
func (s *RateStore) GetBTCPrice(currency string) (float64, error) {
	c, err := domain.ParseCurrency(currency)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.btcPriceEUR <= 0 {
		return 0, apperrors.ErrPriceUnavailable
	}

	switch c {
	case domain.EUR:
		return s.btcPriceEUR, nil
	case domain.USD:
		if s.btcPriceUSD > 0 {
			return s.btcPriceUSD, nil
		}
	}

	rate, err := s.resolveLocked(domain.EUR, c)
	if err != nil {
		return 0, err
	}
	return s.btcPriceEUR * rate, nil
}

// Snapshot returns a copy of the current state.
func (s *RateStore) Snapshot() domain.RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.RateSnapshot{
		RatesFromEUR:   copyRates(s.ratesFromEUR),
		RatesFromUSD:   copyRates(s.ratesFromUSD),
		BTCPriceEUR:    s.btcPriceEUR,
		BTCPriceUSD:    s.btcPriceUSD,
		RatesUpdatedAt: s.ratesAt,
		PriceUpdatedAt: s.priceAt,
	}
	if snap.BTCPriceUSD == 0 && snap.BTCPriceEUR > 0 {
		if r, err := s.resolveLocked(domain.EUR, domain.USD); err == nil {
			snap.BTCPriceUSD = snap.BTCPriceEUR * r
		}
	}
	return snap
}

func copyRates(in map[domain.Currency]float64) map[domain.Currency]float64 {
	out := make(map[domain.Currency]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
