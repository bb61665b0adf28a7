package dao

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrStandConfigNotFound = errors.New("stand configuration not found")

// JSONMap stores the raw config data mapping. The domain layer decodes
// the per-item shapes (including legacy ones) out of it.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for JSONMap", src)
	}
}

type FloatMap map[string]float64

func (m FloatMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *FloatMap) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for FloatMap", src)
	}
}

type StandConfig struct {
	ID uint `gorm:"primaryKey"`

	UserID        uint `gorm:"not null;uniqueIndex:idx_configs_user_option"`
	StandOptionID uint `gorm:"not null;uniqueIndex:idx_configs_user_option"`
	EventID       uint `gorm:"not null;index"`

	ConfigData     JSONMap  `gorm:"type:jsonb"`
	TotalPrice     float64  `gorm:"not null;default:0"`
	PriceBreakdown FloatMap `gorm:"type:jsonb"`

	IsSubmitted   bool   `gorm:"not null;default:false"`
	PaymentStatus string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StandConfig) TableName() string {
	return "stand_configs"
}

type StandConfigDAO struct {
	db *gorm.DB
}

func NewStandConfigDAO(db *gorm.DB) *StandConfigDAO {
	return &StandConfigDAO{
		db: db,
	}
}

func (d *StandConfigDAO) Insert(ctx context.Context, config StandConfig) (StandConfig, error) {
	now := time.Now()
	config.CreatedAt = now
	config.UpdatedAt = now

	err := d.db.WithContext(ctx).Create(&config).Error

	return config, err
}

func (d *StandConfigDAO) Update(ctx context.Context, config StandConfig) (StandConfig, error) {
	err := d.db.WithContext(ctx).Save(&config).Error

	return config, err
}

func (d *StandConfigDAO) FindByID(ctx context.Context, id uint) (StandConfig, error) {
	var config StandConfig
	err := d.db.WithContext(ctx).First(&config, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StandConfig{}, ErrStandConfigNotFound
	}

	return config, err
}

func (d *StandConfigDAO) FindByUserAndOption(ctx context.Context, userID, standOptionID uint) (StandConfig, error) {
	var config StandConfig
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND stand_option_id = ?", userID, standOptionID).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StandConfig{}, ErrStandConfigNotFound
	}

	return config, err
}

func (d *StandConfigDAO) FindByUserAndEvent(ctx context.Context, userID, eventID uint) ([]StandConfig, error) {
	var configs []StandConfig
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Order("id").
		Find(&configs).Error

	return configs, err
}

func (d *StandConfigDAO) FindByEvent(ctx context.Context, eventID uint) ([]StandConfig, error) {
	var configs []StandConfig
	err := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&configs).Error

	return configs, err
}
