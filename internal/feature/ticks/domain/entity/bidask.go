// Package entity defines the domain models for the ticks feature.
package entity

// BidAskEvent is one bid/ask price observation for a symbol at an instant.
// Events are immutable and ephemeral: produced by the tick source, consumed
// once per configured timeframe by the aggregation, never persisted.
type BidAskEvent struct {
	Symbol    string  `json:"symbol"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	Timestamp int64   `json:"timestamp"` // Epoch seconds
}

// Mid is the single price fed into the OHLCV math.
func (e BidAskEvent) Mid() float64 {
	return (e.Bid + e.Ask) / 2
}
