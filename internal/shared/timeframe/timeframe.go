// Package timeframe defines the configured candle resolutions and the
// bucketing arithmetic shared by the aggregation and history features.
package timeframe

import "errors"

// ErrNotFound indicates that no timeframe is configured for the given code.
// Lookups never fall back to a default; an unknown code is fatal for the
// operation that used it.
var ErrNotFound = errors.New("timeframe not found")

// Timeframe is one configured candle resolution, e.g. {"1 minute", "1m", 60}.
type Timeframe struct {
	Name    string
	Code    string
	Seconds int64
}

// Bucket returns the start of the bucket that contains ts.
// Seconds must be positive; this is validated when the configuration is
// loaded, not per call.
func (tf Timeframe) Bucket(ts int64) int64 {
	return BucketStart(ts, tf.Seconds)
}

// BucketStart maps an epoch-seconds timestamp to the start of its bucket for
// the given bucket length. Two timestamps share a bucket iff their
// floor-divided values match.
func BucketStart(ts, seconds int64) int64 {
	return ts / seconds * seconds
}

// Set is the process-wide, read-only list of configured timeframes. It is
// built once at startup and only read afterwards.
type Set []Timeframe

// FromCode resolves a timeframe by its code, returning ErrNotFound when the
// code is not configured.
func (s Set) FromCode(code string) (Timeframe, error) {
	for _, tf := range s {
		if tf.Code == code {
			return tf, nil
		}
	}
	return Timeframe{}, ErrNotFound
}
