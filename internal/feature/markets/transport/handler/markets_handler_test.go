package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"candle_backend/internal/feature/markets/transport/handler"
	"candle_backend/internal/shared/timeframe"
)

func TestMarketsHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := handler.NewMarketsHandler(
		map[string]float64{"ETH-USD": 3000, "BTC-USD": 50000},
		timeframe.Set{
			{Name: "1 minute", Code: "1m", Seconds: 60},
			{Name: "5m", Code: "5m", Seconds: 300},
		},
	)

	r := gin.New()
	r.GET("/api/markets", h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/markets", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"symbols": ["BTC-USD", "ETH-USD"],
		"timeframes": [
			{"code": "1m", "name": "1 minute", "seconds": 60},
			{"code": "5m", "name": "5m", "seconds": 300}
		]
	}`, w.Body.String())
}
