// Package dto defines the HTTP response shapes for the candles feature.
package dto

import "candle_backend/internal/feature/candles/domain/entity"

// History status values.
const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
)

// HistoryResponse is the chart-friendly parallel-array shape: one entry per
// candle across t/o/h/l/c/v, ascending by t.
type HistoryResponse struct {
	Status  string    `json:"s"`
	Times   []int64   `json:"t"`
	Opens   []float64 `json:"o"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Closes  []float64 `json:"c"`
	Volumes []int64   `json:"v"`
}

// NewHistoryResponse converts candles into the parallel-array shape. An empty
// input yields the no_data status with empty (not null) arrays.
func NewHistoryResponse(candles []entity.Candle) HistoryResponse {
	resp := HistoryResponse{
		Status:  StatusOK,
		Times:   make([]int64, 0, len(candles)),
		Opens:   make([]float64, 0, len(candles)),
		Highs:   make([]float64, 0, len(candles)),
		Lows:    make([]float64, 0, len(candles)),
		Closes:  make([]float64, 0, len(candles)),
		Volumes: make([]int64, 0, len(candles)),
	}
	if len(candles) == 0 {
		resp.Status = StatusNoData
		return resp
	}

	for _, c := range candles {
		resp.Times = append(resp.Times, c.Key.Time)
		resp.Opens = append(resp.Opens, c.Open)
		resp.Highs = append(resp.Highs, c.High)
		resp.Lows = append(resp.Lows, c.Low)
		resp.Closes = append(resp.Closes, c.Close)
		resp.Volumes = append(resp.Volumes, c.Volume)
	}
	return resp
}

// ErrorResponse is the JSON error body shared by all candle endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
