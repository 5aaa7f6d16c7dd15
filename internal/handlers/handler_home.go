package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server and its main currency.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(mainCurrency string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message":      "BTC Tracker API v1",
			"mainCurrency": mainCurrency,
		})
	}
}

// registerHomeRoutes registers the '/' status route
func registerHomeRoutes(r *gin.Engine, mainCurrency string) {
	r.GET("/", getHome(mainCurrency))
}
