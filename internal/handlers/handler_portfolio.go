package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/dto"
	"github.com/SscSPs/btc_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvc
}

func registerPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvc) {
	h := &portfolioHandler{portfolioService: portfolioService}
	rg.GET("/portfolio/summary", h.getSummary)
}

// getSummary godoc
// @Summary Portfolio summary
// @Description Holdings, cost basis and profit/loss in the requested currency (main currency by default)
// @Tags portfolio
// @Produce  json
// @Param   currency query string false "Display currency"
// @Success 200 {object} dto.PortfolioSummaryResponse
// @Failure 400 {object} map[string]string "Unsupported currency"
// @Failure 404 {object} map[string]string "BTC price not fetched yet"
// @Failure 500 {object} map[string]string "Failed to compute portfolio summary"
// @Router /portfolio/summary [get]
func (h *portfolioHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PortfolioSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err, "query for PortfolioSummary")
		return
	}

	summary, err := h.portfolioService.Summary(c.Request.Context(), params.Currency)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute portfolio summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToPortfolioSummaryResponse(summary))
}
