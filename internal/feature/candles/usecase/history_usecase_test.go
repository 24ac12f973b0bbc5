package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candle_backend/internal/feature/candles/domain/entity"
	"candle_backend/internal/shared/timeframe"
)

func seedCandle(t *testing.T, store *fakeStore, symbol, tfCode string, bucket int64, mid float64) {
	t.Helper()
	err := store.Put(context.Background(), entity.Candle{
		Key:  entity.CandleKey{Symbol: symbol, Timeframe: tfCode, Time: bucket},
		Open: mid, High: mid, Low: mid, Close: mid, Volume: 1,
	})
	require.NoError(t, err)
}

func TestGetHistory_InvalidRange(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	uc := NewHistoryUsecase(store, newFakeCache(), testTimeframes)

	for _, tc := range []struct{ from, to int64 }{
		{from: 100, to: 100},
		{from: 200, to: 100},
	} {
		_, err := uc.GetHistory(context.Background(), "BTC-USD", "1m", tc.from, tc.to)
		assert.ErrorIs(t, err, ErrInvalidRange)
	}
	assert.Equal(t, 0, store.finds, "validation happens before the store is touched")
}

func TestGetHistory_UnknownTimeframe(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	uc := NewHistoryUsecase(store, newFakeCache(), testTimeframes)

	_, err := uc.GetHistory(context.Background(), "BTC-USD", "15m", 0, 100)
	assert.ErrorIs(t, err, timeframe.ErrNotFound)
	assert.Equal(t, 0, store.finds)
}

func TestGetHistory_EmptyStoreIsNoData(t *testing.T) {
	t.Parallel()

	uc := NewHistoryUsecase(newFakeStore(), newFakeCache(), testTimeframes)

	candles, err := uc.GetHistory(context.Background(), "BTC-USD", "1m", 0, 100)
	require.NoError(t, err, "no data is not an error")
	assert.Empty(t, candles)
}

// TestGetHistory_RangeBoundsAndIsolation queries a closed interval and checks
// that exactly the in-range candles of the requested symbol and timeframe
// come back, ascending.
func TestGetHistory_RangeBoundsAndIsolation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	uc := NewHistoryUsecase(store, newFakeCache(), testTimeframes)

	t1, t2, t3 := int64(600), int64(660), int64(720)
	seedCandle(t, store, "BTC-USD", "1m", t2, 102) // seeded out of order on purpose
	seedCandle(t, store, "BTC-USD", "1m", t1, 101)
	seedCandle(t, store, "BTC-USD", "1m", t3, 103)
	seedCandle(t, store, "ETH-USD", "1m", t2, 3000) // other symbol
	seedCandle(t, store, "BTC-USD", "5m", t2, 104)  // other timeframe
	seedCandle(t, store, "BTC-USD", "1m", t3+60, 105)
	seedCandle(t, store, "BTC-USD", "1m", t1-60, 100)

	candles, err := uc.GetHistory(context.Background(), "BTC-USD", "1m", t1, t3)
	require.NoError(t, err)

	require.Len(t, candles, 3)
	assert.Equal(t, []int64{t1, t2, t3}, []int64{candles[0].Key.Time, candles[1].Key.Time, candles[2].Key.Time})
	for _, c := range candles {
		assert.Equal(t, "BTC-USD", c.Key.Symbol)
		assert.Equal(t, "1m", c.Key.Timeframe)
	}
}

func TestGetHistory_ServedFromCache(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	cache := newFakeCache()
	uc := NewHistoryUsecase(store, cache, testTimeframes)

	cached := []entity.Candle{{
		Key:  entity.CandleKey{Symbol: "BTC-USD", Timeframe: "1m", Time: 60},
		Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 7,
	}}
	cache.Put(context.Background(), "BTC-USD", "1m", 0, 100, cached)

	candles, err := uc.GetHistory(context.Background(), "BTC-USD", "1m", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, cached, candles)
	assert.Equal(t, 0, store.finds, "a cache hit never reaches the store")
}

func TestGetHistory_CacheMissPopulates(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	cache := newFakeCache()
	uc := NewHistoryUsecase(store, cache, testTimeframes)

	seedCandle(t, store, "BTC-USD", "1m", 60, 101)

	first, err := uc.GetHistory(context.Background(), "BTC-USD", "1m", 0, 100)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, store.finds)
	assert.Equal(t, 1, cache.puts)

	second, err := uc.GetHistory(context.Background(), "BTC-USD", "1m", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.finds, "second query is served from cache")
}
