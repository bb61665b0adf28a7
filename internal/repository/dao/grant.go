package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrGrantNotFound = errors.New("access grant not found")

type ExhibitorAccessGrant struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;uniqueIndex:idx_grants_event_user"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_grants_event_user"`

	IsEnabled            bool `gorm:"not null;default:false"`
	IsStandConfigEnabled bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ExhibitorAccessGrant) TableName() string {
	return "exhibitor_access_grants"
}

type GrantDAO struct {
	db *gorm.DB
}

func NewGrantDAO(db *gorm.DB) *GrantDAO {
	return &GrantDAO{
		db: db,
	}
}

func (d *GrantDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (ExhibitorAccessGrant, error) {
	var grant ExhibitorAccessGrant
	err := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ExhibitorAccessGrant{}, ErrGrantNotFound
	}

	return grant, err
}

func (d *GrantDAO) FindByEvent(ctx context.Context, eventID uint) ([]ExhibitorAccessGrant, error) {
	var grants []ExhibitorAccessGrant
	err := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("user_id").Find(&grants).Error

	return grants, err
}

// Upsert creates the (event, user) grant or updates its flags in place.
func (d *GrantDAO) Upsert(ctx context.Context, grant ExhibitorAccessGrant) (ExhibitorAccessGrant, error) {
	existing, err := d.FindByEventAndUser(ctx, grant.EventID, grant.UserID)
	if errors.Is(err, ErrGrantNotFound) {
		now := time.Now()
		grant.CreatedAt = now
		grant.UpdatedAt = now

		err = d.db.WithContext(ctx).Create(&grant).Error

		return grant, err
	}
	if err != nil {
		return ExhibitorAccessGrant{}, err
	}

	existing.IsEnabled = grant.IsEnabled
	existing.IsStandConfigEnabled = grant.IsStandConfigEnabled
	existing.UpdatedAt = time.Now()

	err = d.db.WithContext(ctx).Save(&existing).Error

	return existing, err
}
