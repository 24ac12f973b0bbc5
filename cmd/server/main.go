// Command server runs the candle backend: the Kafka tick consumer feeding
// the aggregation, the synthetic tick generator, and the history HTTP API,
// all in one process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"candle_backend/internal/app/router"
	"candle_backend/internal/config"
	candleadapters "candle_backend/internal/feature/candles/adapters"
	candlehandler "candle_backend/internal/feature/candles/transport/handler"
	candleusecase "candle_backend/internal/feature/candles/usecase"
	marketshandler "candle_backend/internal/feature/markets/transport/handler"
	tickadapters "candle_backend/internal/feature/ticks/adapters"
	tickusecase "candle_backend/internal/feature/ticks/usecase"
	"candle_backend/internal/platform/cache"
	platformdb "candle_backend/internal/platform/db"
	platformlogger "candle_backend/internal/platform/logger"
	platformredis "candle_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := platformlogger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	db := platformdb.OpenDB(cfg.DB, logger)
	store := candleadapters.NewCandleStore(db)

	// Cache; the service runs without it if Redis is down
	rdb, err := platformredis.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running without history cache")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}
	historyCache := cache.NewHistoryCache(rdb, cfg.Cache.TTL, cfg.Cache.Namespace)

	// Usecases
	retry := candleusecase.RetryPolicy{
		MaxAttempts:    cfg.Agg.MaxAttempts,
		InitialBackoff: cfg.Agg.InitialBackoff,
		MaxBackoff:     cfg.Agg.MaxBackoff,
	}
	aggUC := candleusecase.NewAggregationUsecase(store, historyCache, cfg.Timeframes, retry, logger)
	historyUC := candleusecase.NewHistoryUsecase(store, historyCache, cfg.Timeframes)

	// Tick consumer
	consumer := tickadapters.NewTickConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Group, aggUC, logger)
	defer func() { _ = consumer.Close() }()
	go consumer.Run(ctx)

	// Synthetic tick generator
	if cfg.Simulator.Enabled {
		producer := tickadapters.NewTickProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer func() { _ = producer.Close() }()

		generator := tickusecase.NewGenerator(producer, cfg.Symbols, cfg.Simulator.Interval, logger)
		go generator.Run(ctx)
	}

	// HTTP API
	historyH := candlehandler.NewHistoryHandler(historyUC, logger)
	marketsH := marketshandler.NewMarketsHandler(cfg.Symbols, cfg.Timeframes)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router.NewRouter(historyH, marketsH),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
