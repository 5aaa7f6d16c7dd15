package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/SscSPs/btc_tracker/internal/dto"
	"github.com/SscSPs/btc_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct{}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup) {
	h := &currencyHandler{}

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
	}
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Description Retrieves metadata for a supported currency by its 3-letter code (any case)
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Unsupported currency"
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	currency, err := domain.ParseCurrency(code)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve currency")
		return
	}

	logger.Debug("Currency retrieved", slog.String("currency_code", string(currency)))
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency.Info()))
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Retrieves the supported currencies in listing order
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(domain.SupportedCurrencyInfos()))
}
