package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Location    string
	Description string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	err := d.db.WithContext(ctx).Create(&event).Error

	return event, err
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event
	err := d.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Event{}, ErrEventNotFound
	}

	return event, err
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event
	err := d.db.WithContext(ctx).Order("date").Find(&events).Error

	return events, err
}
