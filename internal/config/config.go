// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"candle_backend/internal/shared/timeframe"
)

// Config is the full application configuration.
type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	DB        DBConfig        `envPrefix:"DB_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	Kafka     KafkaConfig     `envPrefix:"KAFKA_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`
	Agg       AggConfig       `envPrefix:"AGG_"`
	Simulator SimulatorConfig `envPrefix:"SIM_"`

	// TimeframesRaw lists the configured timeframes as
	// "code:seconds[:name]" entries, e.g. "1s:1,1m:60:1 minute".
	TimeframesRaw string `env:"TIMEFRAMES" envDefault:"1s:1,1m:60,5m:300"`
	// SymbolsRaw maps simulated symbols to their seed prices.
	SymbolsRaw string `env:"SYMBOLS" envDefault:"BTC-USD:50000,ETH-USD:3000"`

	// Resolved from the raw fields by Load.
	Timeframes timeframe.Set      `env:"-"`
	Symbols    map[string]float64 `env:"-"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Name     string `env:"NAME" envDefault:"candle-backend"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DBConfig holds the postgres connection settings.
type DBConfig struct {
	Host          string `env:"HOST" envDefault:"localhost"`
	Port          string `env:"PORT" envDefault:"5432"`
	User          string `env:"USER" envDefault:"postgres"`
	Password      string `env:"PASSWORD" envDefault:""`
	Name          string `env:"NAME" envDefault:"candles"`
	SSLMode       string `env:"SSLMODE" envDefault:"disable"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// RedisConfig holds the cache backend connection settings.
type RedisConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD" envDefault:""`
}

// KafkaConfig holds the tick transport settings.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"bid-ask-events"`
	Group   string   `env:"GROUP" envDefault:"candle-aggregator"`
}

// CacheConfig bounds the history query cache.
type CacheConfig struct {
	TTL       time.Duration `env:"TTL" envDefault:"30s"`
	Namespace string        `env:"NAMESPACE" envDefault:"history"`
}

// AggConfig bounds the optimistic-retry loop.
type AggConfig struct {
	MaxAttempts    int           `env:"MAX_ATTEMPTS" envDefault:"8"`
	InitialBackoff time.Duration `env:"INITIAL_BACKOFF" envDefault:"50ms"`
	MaxBackoff     time.Duration `env:"MAX_BACKOFF" envDefault:"2s"`
}

// SimulatorConfig controls the synthetic tick generator.
type SimulatorConfig struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Interval time.Duration `env:"INTERVAL" envDefault:"1s"`
}

// Load reads the configuration from the environment, loading a .env file
// first if one exists, and resolves the timeframe and symbol lists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	tfs, err := ParseTimeframes(cfg.TimeframesRaw)
	if err != nil {
		return nil, err
	}
	cfg.Timeframes = tfs

	symbols, err := ParseSymbols(cfg.SymbolsRaw)
	if err != nil {
		return nil, err
	}
	cfg.Symbols = symbols

	return cfg, nil
}

// ParseTimeframes parses a comma-separated "code:seconds[:name]" list. Codes
// must be unique and lengths positive; the bucketing arithmetic relies on
// both and never re-checks them.
func ParseTimeframes(raw string) (timeframe.Set, error) {
	var set timeframe.Set
	seen := map[string]struct{}{}

	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid timeframe %q: want code:seconds[:name]", item)
		}

		code := strings.TrimSpace(parts[0])
		seconds, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid timeframe %q: seconds must be a positive integer", item)
		}
		if _, ok := seen[code]; ok {
			return nil, fmt.Errorf("duplicate timeframe code %q", code)
		}
		seen[code] = struct{}{}

		name := code
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			name = strings.TrimSpace(parts[2])
		}
		set = append(set, timeframe.Timeframe{Name: name, Code: code, Seconds: seconds})
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("no timeframes configured")
	}
	return set, nil
}

// ParseSymbols parses a comma-separated "symbol:seedPrice" map.
func ParseSymbols(raw string) (map[string]float64, error) {
	out := map[string]float64{}

	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		idx := strings.LastIndex(item, ":")
		if idx <= 0 || idx == len(item)-1 {
			return nil, fmt.Errorf("invalid symbol %q: want symbol:seedPrice", item)
		}

		symbol := strings.TrimSpace(item[:idx])
		price, err := strconv.ParseFloat(strings.TrimSpace(item[idx+1:]), 64)
		if err != nil || price <= 0 {
			return nil, fmt.Errorf("invalid symbol %q: seed price must be a positive number", item)
		}
		out[symbol] = price
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no symbols configured")
	}
	return out, nil
}
