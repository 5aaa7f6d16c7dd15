package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/dto"
	"github.com/SscSPs/btc_tracker/internal/middleware"
	"github.com/SscSPs/btc_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates and the BTC price.
type exchangeRateHandler struct {
	rateStore portssvc.RateStoreSvcFacade
	refresher portssvc.RateRefresherSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.RateStoreSvcFacade, rr portssvc.RateRefresherSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateStore: rs,
		refresher: rr,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateStore portssvc.RateStoreSvcFacade, refresher portssvc.RateRefresherSvc) {
	h := newExchangeRateHandler(rateStore, refresher)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.PUT("", h.updateRates)
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/:from/:to", h.getExchangeRate)
	}
	rg.GET("/btc-price/:currency", h.getBTCPrice)
}

// getRates godoc
// @Summary Get all exchange rates
// @Description Returns the EUR and USD rate maps, the BTC price and the legacy flat projection
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.RatesResponse
// @Router /rates [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	c.JSON(http.StatusOK, h.ratesResponse())
}

func (h *exchangeRateHandler) ratesResponse() dto.RatesResponse {
	return dto.ToRatesResponse(h.rateStore.Snapshot(), h.rateStore.LegacyRates(), h.rateStore.FallbackCount())
}

// updateRates godoc
// @Summary Replace exchange rates
// @Description Replaces both rate maps in one step and optionally sets the BTC price
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rates body dto.UpdateExchangeRatesRequest true "Rates keyed by currency code"
// @Success 200 {object} dto.RatesResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /rates [put]
func (h *exchangeRateHandler) updateRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExchangeRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err, "JSON for UpdateExchangeRates")
		return
	}

	if err := h.rateStore.UpdateExchangeRates(dto.ToCurrencyRates(req.EURRates), dto.ToCurrencyRates(req.USDRates)); err != nil {
		respondWithError(c, logger, err, "Failed to update exchange rates")
		return
	}

	if req.BTCPriceEUR != nil {
		usd := 0.0
		if req.BTCPriceUSD != nil {
			usd = *req.BTCPriceUSD
		}
		if err := h.rateStore.SetBTCPrice(*req.BTCPriceEUR, usd); err != nil {
			respondWithError(c, logger, err, "Failed to update BTC price")
			return
		}
	}

	logger.Info("Exchange rates updated manually", slog.Int("eur_rates", len(req.EURRates)), slog.Int("usd_rates", len(req.USDRates)))
	c.JSON(http.StatusOK, h.ratesResponse())
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetches rates and the BTC price from the configured sources right away
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.RatesResponse
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Router /rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.refresher.Refresh(c.Request.Context()); err != nil {
		respondWithError(c, logger, err, "Failed to refresh exchange rates")
		return
	}
	c.JSON(http.StatusOK, h.ratesResponse())
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the rate between two supported currencies. With lenient=true an unresolvable pair answers 1 and is counted as a fallback.
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   lenient query bool false "Fall back to 1 instead of failing"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Unsupported currency pair"
// @Router /rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to := c.Param("from"), c.Param("to")

	var q dto.ExchangeRateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithBindError(c, logger, err, "query for GetExchangeRate")
		return
	}

	if q.Lenient {
		c.JSON(http.StatusOK, dto.ExchangeRateResponse{
			FromCurrencyCode: normalizeCurrencyParam(from),
			ToCurrencyCode:   normalizeCurrencyParam(to),
			Rate:             h.rateStore.GetExchangeRateOrDefault(from, to),
			Lenient:          true,
		})
		return
	}

	rate, err := h.rateStore.GetRate(from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	// GetRate succeeded, so both codes parse.
	fromCur, _ := domain.ParseCurrency(from)
	toCur, _ := domain.ParseCurrency(to)
	c.JSON(http.StatusOK, dto.ExchangeRateResponse{
		FromCurrencyCode: string(fromCur),
		ToCurrencyCode:   string(toCur),
		Rate:             rate,
	})
}

// getBTCPrice godoc
// @Summary Get the BTC price
// @Description Retrieves the current BTC price in a supported currency
// @Tags exchange rates
// @Produce  json
// @Param   currency path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.BTCPriceResponse
// @Failure 400 {object} map[string]string "Unsupported currency"
// @Failure 404 {object} map[string]string "Price not fetched yet"
// @Router /btc-price/{currency} [get]
func (h *exchangeRateHandler) getBTCPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("currency")

	price, err := h.rateStore.GetBTCPrice(code)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve BTC price")
		return
	}

	currency, _ := domain.ParseCurrency(code)
	c.JSON(http.StatusOK, dto.BTCPriceResponse{
		CurrencyCode: string(currency),
		Price:        price,
		Formatted:    utils.FormatFloatWithCurrency(price, currency),
	})
}
