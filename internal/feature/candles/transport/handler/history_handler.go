// Package handler provides the HTTP handlers for the candles feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candle_backend/internal/feature/candles/domain/entity"
	"candle_backend/internal/feature/candles/transport/http/dto"
	"candle_backend/internal/feature/candles/usecase"
	"candle_backend/internal/shared/timeframe"
)

// HistoryUsecase is the usecase interface consumed by this handler.
// Interfaces are defined on the consumer side, following Go convention.
type HistoryUsecase interface {
	GetHistory(ctx context.Context, symbol, code string, from, to int64) ([]entity.Candle, error)
}

// HistoryHandler serves candle history queries.
type HistoryHandler struct {
	uc     HistoryUsecase
	logger *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler with the given usecase.
func NewHistoryHandler(uc HistoryUsecase, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{uc: uc, logger: logger}
}

// GetHistoryHandler returns the candles for a symbol and timeframe within
// [from, to], ascending by time.
//
// Endpoint:
// GET /api/candles/history?symbol=BTC-USD&interval=1m&from=1700000000&to=1700000600
func (h *HistoryHandler) GetHistoryHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	interval := c.Query("interval")
	from, errFrom := strconv.ParseInt(c.Query("from"), 10, 64)
	to, errTo := strconv.ParseInt(c.Query("to"), 10, 64)

	if symbol == "" || interval == "" || errFrom != nil || errTo != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "symbol, interval, from and to are required; from and to must be epoch seconds",
		})
		return
	}

	h.logger.Info("history request",
		zap.String("symbol", symbol),
		zap.String("interval", interval),
		zap.Int64("from", from),
		zap.Int64("to", to))

	candles, err := h.uc.GetHistory(c.Request.Context(), symbol, interval, from, to)
	switch {
	case errors.Is(err, timeframe.ErrNotFound), errors.Is(err, usecase.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case err != nil:
		h.logger.Error("history query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "unexpected server error"})
	default:
		c.JSON(http.StatusOK, dto.NewHistoryResponse(candles))
	}
}
