package usecase

import (
	"context"

	"candle_backend/internal/feature/candles/domain/entity"
)

// CandleStore abstracts the versioned candle persistence. Interfaces are
// defined on the consumer side, following Go convention.
//
// The store must provide per-key linearizability of conditional writes;
// cross-key atomicity is neither required nor used.
type CandleStore interface {
	// Get returns the candle for key with its current version, or
	// found == false when the key is absent.
	Get(ctx context.Context, key entity.CandleKey) (candle entity.Candle, found bool, err error)

	// Put performs a conditional write. When candle.Version is zero the
	// key must still be absent; otherwise the stored version must still
	// equal candle.Version. Either way the persisted version becomes
	// candle.Version+1. A losing race returns ErrVersionConflict; any
	// other error is non-retryable infrastructure failure.
	Put(ctx context.Context, candle entity.Candle) error

	// FindRange returns the candles for symbol and timeframe whose bucket
	// start lies in the closed interval [from, to], ascending by bucket
	// start. An empty result is not an error.
	FindRange(ctx context.Context, symbol, timeframe string, from, to int64) ([]entity.Candle, error)
}

// HistoryCache caches history query results between writes. Implementations
// are best effort: a failing cache degrades to store reads, never to errors.
type HistoryCache interface {
	Get(ctx context.Context, symbol, timeframe string, from, to int64) ([]entity.Candle, bool)
	Put(ctx context.Context, symbol, timeframe string, from, to int64, candles []entity.Candle)

	// Clear drops every cached entry. Called after each successful write,
	// so a cache hit never reflects data older than the latest write.
	Clear(ctx context.Context)
}
