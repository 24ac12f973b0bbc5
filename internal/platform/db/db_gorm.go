// Package db opens the gorm connection used by the candle store.
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"candle_backend/internal/config"
	"candle_backend/internal/feature/candles/adapters"
)

// Opener abstracts gorm.Open so connection retries are testable.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN builds the postgres DSN from configuration.
func BuildDSN(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// OpenDB connects to postgres, retrying for up to a minute, and runs the
// candle schema migration when enabled. Connection failure after the deadline
// is fatal.
func OpenDB(cfg config.DBConfig, logger *zap.Logger) *gorm.DB {
	opener := func(dsn string) (*gorm.DB, error) {
		// TranslateError turns driver duplicate-key violations into
		// gorm.ErrDuplicatedKey, which the store maps to a version
		// conflict.
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, opener, logger)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(&adapters.CandleModel{}); err != nil {
			logger.Fatal("db migration failed", zap.Error(err))
		}
	}

	return db
}

// ConnectWithRetry keeps trying the opener every few seconds until it
// succeeds or the timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener, logger *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		logger.Warn("db connect failed, retrying", zap.Error(err))
		time.Sleep(3 * time.Second)
	}
}
