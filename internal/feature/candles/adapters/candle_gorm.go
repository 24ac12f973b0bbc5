// Package adapters contains the persistence adapters for the candles feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"candle_backend/internal/feature/candles/domain/entity"
	"candle_backend/internal/feature/candles/usecase"
)

type candleGorm struct {
	db *gorm.DB
}

var _ usecase.CandleStore = (*candleGorm)(nil)

// NewCandleStore creates the gorm-backed candle store. The *gorm.DB must be
// opened with TranslateError so duplicate-key violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func NewCandleStore(db *gorm.DB) *candleGorm {
	return &candleGorm{db: db}
}

// CandleModel is the persisted row for one candle bucket. The composite
// primary key doubles as the uniqueness guard for concurrent creates.
type CandleModel struct {
	Symbol    string `gorm:"size:32;not null;primaryKey;priority:1"`
	Timeframe string `gorm:"size:16;not null;primaryKey;priority:2"`
	Time      int64  `gorm:"not null;primaryKey;priority:3"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`

	// Version is the optimistic-concurrency token: conditional updates
	// compare against it and every successful write bumps it by one.
	Version int64 `gorm:"not null;default:0"`
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:    e.Key.Symbol,
		Timeframe: e.Key.Timeframe,
		Time:      e.Key.Time,
		Open:      e.Open,
		High:      e.High,
		Low:       e.Low,
		Close:     e.Close,
		Volume:    e.Volume,
		Version:   e.Version,
	}
}

func toEntity(m CandleModel) entity.Candle {
	return entity.Candle{
		Key:     entity.CandleKey{Symbol: m.Symbol, Timeframe: m.Timeframe, Time: m.Time},
		Open:    m.Open,
		High:    m.High,
		Low:     m.Low,
		Close:   m.Close,
		Volume:  m.Volume,
		Version: m.Version,
	}
}

// Get returns the candle for key, or found == false when absent.
func (r *candleGorm) Get(ctx context.Context, key entity.CandleKey) (entity.Candle, bool, error) {
	var m CandleModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND timeframe = ? AND time = ?", key.Symbol, key.Timeframe, key.Time).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Candle{}, false, nil
	}
	if err != nil {
		return entity.Candle{}, false, err
	}
	return toEntity(m), true, nil
}

// Put performs the conditional write. Version zero inserts (the key must
// still be absent); a positive version updates iff the stored version still
// matches. Both races collapse into usecase.ErrVersionConflict.
func (r *candleGorm) Put(ctx context.Context, c entity.Candle) error {
	if c.Version == 0 {
		m := toModel(c)
		m.Version = 1
		err := r.db.WithContext(ctx).Create(&m).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrVersionConflict
		}
		return err
	}

	res := r.db.WithContext(ctx).Model(&CandleModel{}).
		Where("symbol = ? AND timeframe = ? AND time = ? AND version = ?",
			c.Key.Symbol, c.Key.Timeframe, c.Key.Time, c.Version).
		Updates(map[string]any{
			"open":    c.Open,
			"high":    c.High,
			"low":     c.Low,
			"close":   c.Close,
			"volume":  c.Volume,
			"version": c.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrVersionConflict
	}
	return nil
}

// FindRange returns the candles for symbol and timeframe with bucket start in
// [from, to], ascending.
func (r *candleGorm) FindRange(ctx context.Context, symbol, tfCode string, from, to int64) ([]entity.Candle, error) {
	var ms []CandleModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND timeframe = ? AND time BETWEEN ? AND ?", symbol, tfCode, from, to).
		Order("time ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.Candle, 0, len(ms))
	for _, m := range ms {
		out = append(out, toEntity(m))
	}
	return out, nil
}
