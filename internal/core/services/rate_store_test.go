package services_test

import (
	"math"
	"sync"
	"testing"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/SscSPs/btc_tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateStore_GetRate(t *testing.T) {
	store := seededStore(t)

	tests := []struct {
		name     string
		from, to string
		want     float64
	}{
		{name: "identity", from: "GBP", to: "GBP", want: 1},
		{name: "identity base", from: "EUR", to: "eur", want: 1},
		{name: "eur direct", from: "EUR", to: "JPY", want: 164},
		{name: "usd direct", from: "USD", to: "GBP", want: 0.746},
		{name: "to eur inverts", from: "GBP", to: "EUR", want: 1 / 0.85},
		{name: "cross through eur", from: "GBP", to: "JPY", want: 164 / 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetRate(tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRateStore_ReverseRateIsConsistent(t *testing.T) {
	store := seededStore(t)

	for _, from := range domain.SupportedCurrencies() {
		for _, to := range domain.SupportedCurrencies() {
			ab, err := store.GetRate(string(from), string(to))
			require.NoError(t, err)
			ba, err := store.GetRate(string(to), string(from))
			require.NoError(t, err)
			assert.InEpsilon(t, 1/ab, ba, 0.01, "%s<->%s", from, to)
		}
	}
}

func TestRateStore_RoundTrip(t *testing.T) {
	store := seededStore(t)

	for _, via := range domain.SupportedCurrencies() {
		there, err := store.GetRate("EUR", string(via))
		require.NoError(t, err)
		back, err := store.GetRate(string(via), "EUR")
		require.NoError(t, err)
		assert.InEpsilon(t, 1000.0, 1000*there*back, 0.005, "EUR->%s->EUR", via)
	}
}

func TestRateStore_UnknownOrMissingPair(t *testing.T) {
	store := seededStore(t)

	_, err := store.GetRate("EUR", "NOK")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrencyPair)

	_, err = store.GetRate("SEK", "USD")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrencyPair)

	empty := services.NewRateStore(discardLogger())
	_, err = empty.GetRate("GBP", "JPY")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrencyPair)
}

func TestRateStore_CrossFallsBackToOtherBase(t *testing.T) {
	store := services.NewRateStore(discardLogger())
	require.NoError(t, store.UpdateExchangeRates(
		map[domain.Currency]float64{domain.USD: 1.14},
		map[domain.Currency]float64{domain.EUR: 0.877, domain.INR: 83.3},
	))

	got, err := store.GetRate("EUR", "INR")
	require.NoError(t, err)
	assert.InDelta(t, 1.14*83.3, got, 1e-9)
}

func TestRateStore_UpdateRejectsInvalidRates(t *testing.T) {
	store := seededStore(t)

	bad := []map[domain.Currency]float64{
		{domain.USD: 0},
		{domain.USD: -1.14},
		{domain.USD: math.NaN()},
		{domain.USD: math.Inf(1)},
		{domain.Currency("NOK"): 11.5},
	}
	for _, rates := range bad {
		err := store.UpdateExchangeRates(rates, testRatesFromUSD())
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}

	got, err := store.GetRate("EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.14, got, "previous rates are kept")
}

func TestRateStore_BTCPrice(t *testing.T) {
	store := services.NewRateStore(discardLogger())

	_, err := store.GetBTCPrice("EUR")
	assert.ErrorIs(t, err, apperrors.ErrPriceUnavailable)

	require.NoError(t, store.UpdateExchangeRates(testRatesFromEUR(), testRatesFromUSD()))
	require.NoError(t, store.SetBTCPrice(50000, 0))

	eur, err := store.GetBTCPrice("EUR")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, eur)

	usd, err := store.GetBTCPrice("usd")
	require.NoError(t, err)
	assert.InDelta(t, 57000, usd, 1e-6)

	jpy, err := store.GetBTCPrice("JPY")
	require.NoError(t, err)
	assert.InDelta(t, 8200000, jpy, 1e-6)

	require.NoError(t, store.SetBTCPrice(50000, 57500))
	usd, err = store.GetBTCPrice("USD")
	require.NoError(t, err)
	assert.Equal(t, 57500.0, usd, "an explicit USD price wins over the derived one")

	assert.ErrorIs(t, store.SetBTCPrice(0, 57500), apperrors.ErrValidation)
	assert.ErrorIs(t, store.SetBTCPrice(math.NaN(), 0), apperrors.ErrValidation)

	_, err = store.GetBTCPrice("NOK")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrencyPair)
}

func TestRateStore_GetExchangeRateOrDefault(t *testing.T) {
	store := services.NewRateStore(discardLogger())

	assert.Equal(t, 1.0, store.GetExchangeRateOrDefault("GBP", "JPY"))
	assert.Equal(t, 1.0, store.GetExchangeRateOrDefault("EUR", "NOK"))
	assert.Equal(t, int64(2), store.FallbackCount())

	require.NoError(t, store.UpdateExchangeRates(testRatesFromEUR(), testRatesFromUSD()))
	assert.Equal(t, 164.0, store.GetExchangeRateOrDefault("EUR", "JPY"))
	assert.Equal(t, int64(2), store.FallbackCount(), "resolved rates do not count as fallbacks")
}

func TestRateStore_GetExchangeRateOrDefault_PartialStores(t *testing.T) {
	shapes := []struct {
		name     string
		eur, usd map[domain.Currency]float64
	}{
		{name: "empty", eur: map[domain.Currency]float64{}, usd: map[domain.Currency]float64{}},
		{name: "eur only", eur: testRatesFromEUR(), usd: map[domain.Currency]float64{}},
		{name: "usd only", eur: map[domain.Currency]float64{}, usd: testRatesFromUSD()},
		{name: "eur partial", eur: map[domain.Currency]float64{domain.USD: 1.14, domain.GBP: 0.85}, usd: testRatesFromUSD()},
		{name: "usd partial", eur: testRatesFromEUR(), usd: map[domain.Currency]float64{domain.JPY: 143.9}},
		{name: "disjoint", eur: map[domain.Currency]float64{domain.GBP: 0.85}, usd: map[domain.Currency]float64{domain.INR: 83.3}},
	}

	for _, shape := range shapes {
		t.Run(shape.name, func(t *testing.T) {
			store := services.NewRateStore(discardLogger())
			require.NoError(t, store.UpdateExchangeRates(shape.eur, shape.usd))

			var failures int64
			for _, from := range domain.SupportedCurrencies() {
				for _, to := range domain.SupportedCurrencies() {
					strict, err := store.GetRate(string(from), string(to))
					got := store.GetExchangeRateOrDefault(string(from), string(to))
					if err != nil {
						failures++
						assert.Equal(t, 1.0, got, "%s->%s", from, to)
						continue
					}
					assert.Equal(t, strict, got, "%s->%s", from, to)
				}
			}
			assert.Equal(t, failures, store.FallbackCount())
		})
	}
}

func TestRateStore_SnapshotAndLegacyRates(t *testing.T) {
	store := seededStore(t)

	snap := store.Snapshot()
	assert.Equal(t, 164.0, snap.RatesFromEUR[domain.JPY])
	assert.Equal(t, 0.877, snap.RatesFromUSD[domain.EUR])
	assert.InDelta(t, 57000, snap.BTCPriceUSD, 1e-6)
	assert.False(t, snap.RatesUpdatedAt.IsZero())

	// The snapshot is a copy.
	snap.RatesFromEUR[domain.JPY] = 1
	got, err := store.GetRate("EUR", "JPY")
	require.NoError(t, err)
	assert.Equal(t, 164.0, got)

	legacy := store.LegacyRates()
	assert.Equal(t, 1.14, legacy.EURToUSD)
	assert.Equal(t, 95.0, legacy.EURToINR)
	assert.Equal(t, 164.0, legacy.EURToJPY)
}

func TestRateStore_ConcurrentUpdatesAreAtomic(t *testing.T) {
	store := seededStore(t)

	alt := testRatesFromEUR()
	alt[domain.USD] = 1.2
	altUSD := testRatesFromUSD()
	altUSD[domain.EUR] = 0.8

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					_ = store.UpdateExchangeRates(alt, altUSD)
				} else {
					_ = store.UpdateExchangeRates(testRatesFromEUR(), testRatesFromUSD())
				}
			}
		}(i)
	}

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap := store.Snapshot()
				pair := [2]float64{snap.RatesFromEUR[domain.USD], snap.RatesFromUSD[domain.EUR]}
				assert.Contains(t, [][2]float64{{1.14, 0.877}, {1.2, 0.8}}, pair)
			}
		}()
	}
	wg.Wait()
}
