// Package usecase implements the synthetic tick source: a per-symbol random
// walk published on a fixed cadence.
package usecase

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"candle_backend/internal/feature/ticks/domain/entity"
)

// relative spread applied around the simulated mid price
const spreadRatio = 0.0005

// TickPublisher abstracts the transport the generator publishes to.
type TickPublisher interface {
	Send(ctx context.Context, ev entity.BidAskEvent) error
}

// NextPrice advances a random walk one step from last: a uniform move of at
// most ±0.1% of the last price, floored at 1.0. The per-symbol last price is
// owned by the caller and threaded explicitly.
func NextPrice(rnd *rand.Rand, last float64) float64 {
	maxMove := last * 0.001
	delta := (rnd.Float64()*2 - 1) * maxMove
	next := last + delta
	if next < 1.0 {
		next = 1.0
	}
	return next
}

// Generator emits one synthetic bid/ask event per configured symbol on every
// cadence tick. It owns the per-symbol last-price state and is not safe for
// concurrent use; run exactly one per process.
type Generator struct {
	publisher TickPublisher
	seeds     map[string]float64 // symbol -> seed price
	interval  time.Duration
	rnd       *rand.Rand
	logger    *zap.Logger

	last map[string]float64
}

// NewGenerator creates a generator seeded with the configured symbols and
// their starting prices.
func NewGenerator(publisher TickPublisher, seeds map[string]float64, interval time.Duration, logger *zap.Logger) *Generator {
	if interval <= 0 {
		interval = time.Second
	}
	return &Generator{
		publisher: publisher,
		seeds:     seeds,
		interval:  interval,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    logger,
		last:      make(map[string]float64, len(seeds)),
	}
}

// Run publishes ticks until ctx is cancelled.
func (g *Generator) Run(ctx context.Context) {
	g.logger.Info("tick generator started",
		zap.Int("symbols", len(g.seeds)),
		zap.Duration("interval", g.interval))

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("tick generator stopped")
			return
		case <-ticker.C:
			g.Emit(ctx, time.Now().Unix())
		}
	}
}

// Emit publishes one tick per configured symbol stamped with now. Publish
// failures are logged per symbol and do not stop the remaining symbols.
func (g *Generator) Emit(ctx context.Context, now int64) {
	for symbol, seed := range g.seeds {
		lastPrice, ok := g.last[symbol]
		if !ok {
			lastPrice = seed
		}
		mid := NextPrice(g.rnd, lastPrice)
		g.last[symbol] = mid

		// little fixed spread around the mid
		spread := mid * spreadRatio
		ev := entity.BidAskEvent{
			Symbol:    symbol,
			Bid:       mid - spread/2,
			Ask:       mid + spread/2,
			Timestamp: now,
		}

		if err := g.publisher.Send(ctx, ev); err != nil {
			g.logger.Error("publish tick failed",
				zap.String("symbol", symbol),
				zap.Error(err))
			continue
		}
		g.logger.Debug("generated tick",
			zap.String("symbol", symbol),
			zap.Float64("mid", mid),
			zap.Float64("bid", ev.Bid),
			zap.Float64("ask", ev.Ask))
	}
}
