package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candle_backend/internal/feature/ticks/domain/entity"
)

func TestDecodeEvent(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		ev, err := decodeEvent([]byte(`{"symbol":"BTC-USD","bid":100.0,"ask":102.0,"timestamp":1000000}`))
		require.NoError(t, err)
		assert.Equal(t, entity.BidAskEvent{Symbol: "BTC-USD", Bid: 100, Ask: 102, Timestamp: 1000000}, ev)
		assert.Equal(t, 101.0, ev.Mid())
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := decodeEvent([]byte(`{"symbol":`))
		assert.Error(t, err)
	})

	t.Run("empty symbol", func(t *testing.T) {
		_, err := decodeEvent([]byte(`{"bid":100.0,"ask":102.0,"timestamp":1000000}`))
		assert.ErrorContains(t, err, "empty symbol")
	})
}
