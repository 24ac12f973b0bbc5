// Package router wires the HTTP routes.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	candleshandler "candle_backend/internal/feature/candles/transport/handler"
	marketshandler "candle_backend/internal/feature/markets/transport/handler"
	platformhandler "candle_backend/internal/platform/http/handler"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(history *candleshandler.HistoryHandler, markets *marketshandler.MarketsHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// liveness probe
	r.GET("/healthz", platformhandler.Health)

	api := r.Group("/api")
	{
		api.GET("/candles/history", history.GetHistoryHandler)
		api.GET("/markets", markets.List)
	}

	return r
}
