package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/btc_tracker/internal/apperrors"
	"github.com/SscSPs/btc_tracker/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "btc-tracker/1.0"
	maxBodyBytes   = 1 << 20
)

// Client fetches fiat exchange rates from a Frankfurter-compatible API and the
// BTC price from a CoinGecko-compatible API.
type Client struct {
	httpClient  *http.Client
	ratesURL    string
	btcPriceURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the given base URLs, e.g.
// "https://api.frankfurter.app" and "https://api.coingecko.com/api/v3".
func NewClient(ratesURL, btcPriceURL string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		ratesURL:    strings.TrimRight(ratesURL, "/"),
		btcPriceURL: strings.TrimRight(btcPriceURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// latestResponse is the body of GET /latest.
type latestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// simplePriceResponse is the body of GET /simple/price?ids=bitcoin.
type simplePriceResponse map[string]map[string]float64

// FetchRates returns base->symbol rates for every symbol except base itself.
// Codes outside the supported set are dropped.
func (c *Client) FetchRates(ctx context.Context, base domain.Currency, symbols []domain.Currency) (map[domain.Currency]float64, error) {
	wanted := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s != base {
			wanted = append(wanted, string(s))
		}
	}

	q := url.Values{}
	q.Set("base", string(base))
	q.Set("symbols", strings.Join(wanted, ","))
	endpoint := c.ratesURL + "/latest?" + q.Encode()

	var body latestResponse
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	if body.Base != "" && !strings.EqualFold(body.Base, string(base)) {
		return nil, fmt.Errorf("%w: asked for %s rates, got %s", apperrors.ErrRateSourceUnavailable, base, body.Base)
	}

	rates := make(map[domain.Currency]float64, len(body.Rates))
	for code, rate := range body.Rates {
		cur, err := domain.ParseCurrency(code)
		if err != nil || cur == base || rate <= 0 {
			continue
		}
		rates[cur] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no usable %s rates returned", apperrors.ErrRateSourceUnavailable, base)
	}
	return rates, nil
}

// FetchBTCPrice returns the BTC price in EUR and USD. A missing USD price is
// returned as 0, which the rate store treats as "derive from EUR".
func (c *Client) FetchBTCPrice(ctx context.Context) (float64, float64, error) {
	q := url.Values{}
	q.Set("ids", "bitcoin")
	q.Set("vs_currencies", "eur,usd")
	endpoint := c.btcPriceURL + "/simple/price?" + q.Encode()

	var body simplePriceResponse
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return 0, 0, err
	}

	prices, ok := body["bitcoin"]
	if !ok || prices["eur"] <= 0 {
		return 0, 0, fmt.Errorf("%w: no BTC price in EUR returned", apperrors.ErrRateSourceUnavailable)
	}
	return prices["eur"], prices["usd"], nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrRateSourceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", apperrors.ErrRateSourceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", apperrors.ErrRateSourceUnavailable, req.URL.Host, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", apperrors.ErrRateSourceUnavailable, err)
	}
	return nil
}
