package usecase

import "errors"

// Errors surfaced by the candle usecases. Upper layers pick a response with
// errors.Is; nothing here is retried outside the aggregation loop itself.
var (
	// ErrVersionConflict is returned by a CandleStore put when another
	// writer committed between the read and the conditional write. It is
	// the only retryable store outcome.
	ErrVersionConflict = errors.New("candle version conflict")

	// ErrRetryExhausted indicates that the optimistic-retry budget for one
	// (tick, timeframe) unit ran out. The unit failed; siblings are
	// unaffected.
	ErrRetryExhausted = errors.New("candle update retries exhausted")

	// ErrInvalidRange indicates a history query where from >= to.
	ErrInvalidRange = errors.New("invalid time range: 'from' must be less than 'to'")
)
