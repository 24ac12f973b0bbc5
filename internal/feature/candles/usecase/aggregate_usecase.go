// Package usecase implements the business logic of the candles feature: the
// optimistic-concurrency candle aggregation and the cached history queries.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"candle_backend/internal/feature/candles/domain/entity"
	tickentity "candle_backend/internal/feature/ticks/domain/entity"
	"candle_backend/internal/shared/timeframe"
)

// RetryPolicy bounds the optimistic-retry loop. The backoff doubles after
// every conflict, starting at InitialBackoff and never exceeding MaxBackoff.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy starts at 50ms and doubles, capped so a hot key cannot
// stall a consumer indefinitely.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    8,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
	}
}

// aggregationUsecase folds bid/ask ticks into per-timeframe candles through
// the versioned store. It holds no per-key state of its own: all coordination
// between concurrent callers goes through the store's conditional writes.
type aggregationUsecase struct {
	store  CandleStore
	cache  HistoryCache
	tfs    timeframe.Set
	retry  RetryPolicy
	logger *zap.Logger
}

// NewAggregationUsecase creates a new aggregation usecase over the given
// store and cache for the configured timeframe set.
func NewAggregationUsecase(store CandleStore, cache HistoryCache, tfs timeframe.Set, retry RetryPolicy, logger *zap.Logger) *aggregationUsecase {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}
	return &aggregationUsecase{
		store:  store,
		cache:  cache,
		tfs:    tfs,
		retry:  retry,
		logger: logger,
	}
}

// OnEvent fans one tick out across every configured timeframe. Each
// (tick, timeframe) pair is an independent unit of work: a failed unit is
// logged and does not stop the remaining timeframes. The first failure is
// returned after all timeframes were attempted.
func (u *aggregationUsecase) OnEvent(ctx context.Context, ev tickentity.BidAskEvent) error {
	var firstErr error
	for _, tf := range u.tfs {
		if err := u.Apply(ctx, ev, tf); err != nil {
			u.logger.Error("candle update failed",
				zap.String("symbol", ev.Symbol),
				zap.String("timeframe", tf.Code),
				zap.Int64("timestamp", ev.Timestamp),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Apply folds one tick into the candle for one timeframe. The whole
// read-compute-write cycle is the unit of retry: on a version conflict the
// cycle restarts from a fresh read, backing off between attempts. Store
// errors other than conflicts are not retried here and propagate to the
// caller.
func (u *aggregationUsecase) Apply(ctx context.Context, ev tickentity.BidAskEvent, tf timeframe.Timeframe) error {
	backoff := u.retry.InitialBackoff
	for attempt := 1; ; attempt++ {
		err := u.applyOnce(ctx, ev, tf)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return err
		}
		if attempt >= u.retry.MaxAttempts {
			return fmt.Errorf("%w: %s/%s after %d attempts",
				ErrRetryExhausted, ev.Symbol, tf.Code, attempt)
		}

		u.logger.Debug("candle version conflict, retrying",
			zap.String("symbol", ev.Symbol),
			zap.String("timeframe", tf.Code),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > u.retry.MaxBackoff {
			backoff = u.retry.MaxBackoff
		}
	}
}

func (u *aggregationUsecase) applyOnce(ctx context.Context, ev tickentity.BidAskEvent, tf timeframe.Timeframe) error {
	mid := ev.Mid()
	key := entity.CandleKey{
		Symbol:    ev.Symbol,
		Timeframe: tf.Code,
		Time:      tf.Bucket(ev.Timestamp),
	}

	current, found, err := u.store.Get(ctx, key)
	if err != nil {
		return err
	}

	var next entity.Candle
	if !found {
		next = entity.Candle{Key: key, Open: mid, High: mid, Low: mid, Close: mid, Volume: 1}
		u.logger.Debug("creating candle",
			zap.String("symbol", key.Symbol),
			zap.String("timeframe", key.Timeframe),
			zap.Int64("time", key.Time))
	} else {
		next = current
		next.High = math.Max(current.High, mid)
		next.Low = math.Min(current.Low, mid)
		next.Close = mid
		next.Volume = current.Volume + 1
		u.logger.Debug("updating candle",
			zap.String("symbol", key.Symbol),
			zap.String("timeframe", key.Timeframe),
			zap.Int64("time", key.Time),
			zap.Int64("volume", next.Volume))
	}

	if err := u.store.Put(ctx, next); err != nil {
		return err
	}

	// Conservative invalidation: any committed write makes every cached
	// query result stale, so the whole cache goes.
	u.cache.Clear(ctx)
	return nil
}
