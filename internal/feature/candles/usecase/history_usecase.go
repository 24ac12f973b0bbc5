package usecase

import (
	"context"

	"candle_backend/internal/feature/candles/domain/entity"
	"candle_backend/internal/shared/timeframe"
)

// historyUsecase serves time-range candle queries through the query cache.
type historyUsecase struct {
	store CandleStore
	cache HistoryCache
	tfs   timeframe.Set
}

// NewHistoryUsecase creates a new history usecase over the given store and
// cache for the configured timeframe set.
func NewHistoryUsecase(store CandleStore, cache HistoryCache, tfs timeframe.Set) *historyUsecase {
	return &historyUsecase{store: store, cache: cache, tfs: tfs}
}

// GetHistory returns the candles for symbol and timeframe code whose bucket
// start lies in [from, to], ascending by bucket start. An unknown code fails
// with timeframe.ErrNotFound and from >= to with ErrInvalidRange, both before
// the store is touched. An empty result means "no data", not an error.
func (u *historyUsecase) GetHistory(ctx context.Context, symbol, code string, from, to int64) ([]entity.Candle, error) {
	tf, err := u.tfs.FromCode(code)
	if err != nil {
		return nil, err
	}
	if from >= to {
		return nil, ErrInvalidRange
	}

	if candles, ok := u.cache.Get(ctx, symbol, tf.Code, from, to); ok {
		return candles, nil
	}

	candles, err := u.store.FindRange(ctx, symbol, tf.Code, from, to)
	if err != nil {
		return nil, err
	}

	u.cache.Put(ctx, symbol, tf.Code, from, to, candles)
	return candles, nil
}
