package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerHomeRoutes(r, services.MainCurrency)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.UserIdentity())

	registerCurrencyRoutes(v1)
	registerExchangeRateRoutes(v1, service.Rates, service.RateRefresh)
	registerConversionRoutes(v1, service.Conversion)
	registerTransactionRoutes(v1, service.Transaction)
	registerPortfolioRoutes(v1, service.Portfolio)
}
