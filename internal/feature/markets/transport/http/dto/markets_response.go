// Package dto defines data transfer objects for the markets HTTP API.
package dto

// TimeframeItem describes one configured candle timeframe.
type TimeframeItem struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Seconds int64  `json:"seconds"`
}

// MarketsResponse lists everything a client needs to build a history query:
// the symbols being aggregated and the timeframes candles exist for.
type MarketsResponse struct {
	Symbols    []string        `json:"symbols"`
	Timeframes []TimeframeItem `json:"timeframes"`
}
