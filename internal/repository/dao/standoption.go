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

var ErrStandOptionNotFound = errors.New("stand option not found")

// StandItemDoc is the persisted shape of one schema item inside the
// stand option's JSONB column.
type StandItemDoc struct {
	ID            string              `json:"id"`
	Label         string              `json:"label"`
	Description   string              `json:"description,omitempty"`
	Type          string              `json:"type"`
	Required      bool                `json:"required"`
	Placeholder   string              `json:"placeholder,omitempty"`
	MaxSelections int                 `json:"max_selections,omitempty"`
	Options       []StandOptionItemDoc `json:"options,omitempty"`
}

type StandOptionItemDoc struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Value       string  `json:"value,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

type StandItems []StandItemDoc

func (i StandItems) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *StandItems) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("unsupported type %T for StandItems", src)
	}
}

type StandOption struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint `gorm:"not null;index"`

	Title       string `gorm:"not null"`
	Description string

	Items StandItems `gorm:"type:jsonb;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StandOptionDAO struct {
	db *gorm.DB
}

func NewStandOptionDAO(db *gorm.DB) *StandOptionDAO {
	return &StandOptionDAO{
		db: db,
	}
}

func (d *StandOptionDAO) Insert(ctx context.Context, option StandOption) (StandOption, error) {
	now := time.Now()
	option.CreatedAt = now
	option.UpdatedAt = now

	err := d.db.WithContext(ctx).Create(&option).Error

	return option, err
}

func (d *StandOptionDAO) Update(ctx context.Context, option StandOption) (StandOption, error) {
	option.UpdatedAt = time.Now()

	err := d.db.WithContext(ctx).Save(&option).Error

	return option, err
}

func (d *StandOptionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&StandOption{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStandOptionNotFound
	}

	return nil
}

func (d *StandOptionDAO) FindByID(ctx context.Context, id uint) (StandOption, error) {
	var option StandOption
	err := d.db.WithContext(ctx).First(&option, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StandOption{}, ErrStandOptionNotFound
	}

	return option, err
}

func (d *StandOptionDAO) FindByEventID(ctx context.Context, eventID uint) ([]StandOption, error) {
	var options []StandOption
	err := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&options).Error

	return options, err
}
