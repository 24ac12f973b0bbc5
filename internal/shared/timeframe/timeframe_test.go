package timeframe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBucketStart verifies the bucket arithmetic on representative values.
func TestBucketStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ts       int64
		seconds  int64
		expected int64
	}{
		{name: "exact bucket boundary", ts: 1_000_020, seconds: 60, expected: 1_000_020},
		{name: "mid bucket", ts: 1_000_000, seconds: 60, expected: 999_960},
		{name: "one second buckets are identity", ts: 1_000_000, seconds: 1, expected: 1_000_000},
		{name: "five minute bucket", ts: 1_700_000_123, seconds: 300, expected: 1_700_000_100},
		{name: "zero timestamp", ts: 0, seconds: 60, expected: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BucketStart(tt.ts, tt.seconds))
		})
	}
}

// TestBucketStart_Properties checks that every timestamp falls inside its own
// bucket and that bucketing a bucket start is a no-op.
func TestBucketStart_Properties(t *testing.T) {
	t.Parallel()

	lengths := []int64{1, 5, 60, 300, 3600, 86400}
	timestamps := []int64{0, 1, 59, 60, 61, 12345, 1_000_000, 1_700_000_000}

	for _, n := range lengths {
		for _, ts := range timestamps {
			start := BucketStart(ts, n)
			if start > ts || ts >= start+n {
				t.Errorf("bucketStart(%d, %d) = %d, want start <= ts < start+len", ts, n, start)
			}
			if got := BucketStart(start, n); got != start {
				t.Errorf("bucketStart is not idempotent: bucketStart(%d, %d) = %d", start, n, got)
			}
		}
	}
}

func TestTimeframe_Bucket(t *testing.T) {
	t.Parallel()

	tf := Timeframe{Name: "1 minute", Code: "1m", Seconds: 60}
	assert.Equal(t, int64(999_960), tf.Bucket(1_000_000))
}

func TestSet_FromCode(t *testing.T) {
	t.Parallel()

	set := Set{
		{Name: "1 second", Code: "1s", Seconds: 1},
		{Name: "1 minute", Code: "1m", Seconds: 60},
		{Name: "5 minutes", Code: "5m", Seconds: 300},
	}

	tf, err := set.FromCode("1m")
	assert.NoError(t, err)
	assert.Equal(t, int64(60), tf.Seconds)
	assert.Equal(t, "1 minute", tf.Name)

	_, err = set.FromCode("15m")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = Set{}.FromCode("1m")
	assert.ErrorIs(t, err, ErrNotFound)
}
