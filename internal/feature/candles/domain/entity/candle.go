// Package entity defines the domain models for the candles feature.
package entity

// CandleKey uniquely identifies one candle: one symbol, one timeframe, one
// time bucket. It is immutable once computed.
type CandleKey struct {
	Symbol    string // Trading symbol (e.g., "BTC-USD", "ETH-USD")
	Timeframe string // Timeframe code (e.g., "1s", "1m", "5m")
	Time      int64  // Bucket start, epoch seconds
}

// Candle is the OHLCV aggregate for one key.
//
// Open is the mid of the first tick processed for the key and Close the mid
// of the most recent one. "First" and "last" mean processing order, not event
// timestamp order: high, low and volume are order-invariant because max, min
// and count commute, while open/close may differ from timestamp order when
// delivery within a bucket is out of order.
type Candle struct {
	Key    CandleKey
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64 // Count of ticks folded into this candle so far

	// Version is the optimistic-concurrency token maintained by the store.
	// Zero means "not persisted yet"; each successful write increments it
	// by exactly one.
	Version int64
}
