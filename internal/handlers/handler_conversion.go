package handlers

import (
	"net/http"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/dto"
	"github.com/SscSPs/btc_tracker/internal/middleware"
	"github.com/SscSPs/btc_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests that convert money between currencies.
type conversionHandler struct {
	conversionService portssvc.ConversionSvc
}

// registerConversionRoutes registers routes related to conversions.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := &conversionHandler{conversionService: conversionService}

	convert := rg.Group("/convert")
	{
		convert.POST("", h.convert)
		convert.GET("", h.convertQuery)
		convert.POST("/values", h.convertValues)
	}
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount between two supported currencies. A missing amount converts to 0.
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   request body dto.ConvertRequest true "Amount and currencies"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input or unsupported currency pair"
// @Router /convert [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err, "JSON for Convert")
		return
	}

	h.respondConversion(c, req.Amount, req.From, req.To)
}

// convertQuery godoc
// @Summary Convert an amount (query form)
// @Description Same as POST /convert with the amount given as a lenient query parameter
// @Tags conversion
// @Produce  json
// @Param   amount query string false "Amount, thousands separators allowed"
// @Param   from query string true "Source currency"
// @Param   to query string true "Target currency"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input or unsupported currency pair"
// @Router /convert [get]
func (h *conversionHandler) convertQuery(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithBindError(c, logger, err, "query for Convert")
		return
	}

	amount := domain.ParseAmount(q.Amount)
	h.respondConversion(c, &amount, q.From, q.To)
}

func (h *conversionHandler) respondConversion(c *gin.Context, amountIn *float64, fromCode, toCode string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	amount := 0.0
	if amountIn != nil {
		amount = domain.SanitizeAmount(*amountIn)
	}
	result, rate, err := h.conversionService.ConvertWithRate(amount, fromCode, toCode)
	if err != nil {
		respondWithError(c, logger, err, "Failed to convert amount")
		return
	}
	from, _ := domain.ParseCurrency(fromCode)
	to, _ := domain.ParseCurrency(toCode)
	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    amount,
		From:      string(from),
		To:        string(to),
		Rate:      rate,
		Result:    result,
		Rounded:   utils.RoundToCurrency(result, to),
		Formatted: utils.FormatFloatWithCurrency(result, to),
	})
}

// convertValues godoc
// @Summary Convert a value bundle
// @Description Converts price, cost and fee with a single rate
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   request body dto.ConvertValuesRequest true "Values and currencies"
// @Success 200 {object} dto.ConvertValuesResponse
// @Failure 400 {object} map[string]string "Invalid input or unsupported currency pair"
// @Router /convert/values [post]
func (h *conversionHandler) convertValues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err, "JSON for ConvertValues")
		return
	}

	values, err := h.conversionService.ConvertValues(req.Values, req.From, req.To)
	if err != nil {
		respondWithError(c, logger, err, "Failed to convert values")
		return
	}

	from, _ := domain.ParseCurrency(req.From)
	to, _ := domain.ParseCurrency(req.To)
	c.JSON(http.StatusOK, dto.ConvertValuesResponse{From: string(from), To: string(to), Values: values})
}
