// Package handler serves the markets metadata endpoint.
package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"candle_backend/internal/feature/markets/transport/http/dto"
	"candle_backend/internal/shared/timeframe"
)

// MarketsHandler answers what symbols and timeframes are available. Both come
// from configuration, so the response is computed once at construction.
type MarketsHandler struct {
	response dto.MarketsResponse
}

// NewMarketsHandler creates a handler for the given configured symbols and
// timeframes. Symbols are listed in sorted order regardless of map iteration.
func NewMarketsHandler(symbols map[string]float64, tfs timeframe.Set) *MarketsHandler {
	names := make([]string, 0, len(symbols))
	for symbol := range symbols {
		names = append(names, symbol)
	}
	sort.Strings(names)

	items := make([]dto.TimeframeItem, 0, len(tfs))
	for _, tf := range tfs {
		items = append(items, dto.TimeframeItem{Code: tf.Code, Name: tf.Name, Seconds: tf.Seconds})
	}

	return &MarketsHandler{response: dto.MarketsResponse{Symbols: names, Timeframes: items}}
}

// List returns the configured symbols and timeframes.
func (h *MarketsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.response)
}
