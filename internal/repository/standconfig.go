package repository

import (
	"context"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/repository/dao"
)

var ErrStandConfigNotFound = dao.ErrStandConfigNotFound

type StandConfigDAO interface {
	Insert(ctx context.Context, config dao.StandConfig) (dao.StandConfig, error)
	Update(ctx context.Context, config dao.StandConfig) (dao.StandConfig, error)
	FindByID(ctx context.Context, id uint) (dao.StandConfig, error)
	FindByUserAndOption(ctx context.Context, userID, standOptionID uint) (dao.StandConfig, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) ([]dao.StandConfig, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.StandConfig, error)
}

type StandConfigRepository struct {
	dao StandConfigDAO
}

func NewStandConfigRepository(dao StandConfigDAO) *StandConfigRepository {
	return &StandConfigRepository{
		dao: dao,
	}
}

func (r *StandConfigRepository) Create(ctx context.Context, config domain.StandConfig) (domain.StandConfig, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(config))
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StandConfigRepository) Update(ctx context.Context, config domain.StandConfig) (domain.StandConfig, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(config))
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StandConfigRepository) FindByID(ctx context.Context, id uint) (domain.StandConfig, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StandConfigRepository) FindByUserAndOption(ctx context.Context, userID, standOptionID uint) (domain.StandConfig, error) {
	found, err := r.dao.FindByUserAndOption(ctx, userID, standOptionID)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("r.dao.FindByUserAndOption -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StandConfigRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) ([]domain.StandConfig, error) {
	found, err := r.dao.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserAndEvent -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StandConfigRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.StandConfig, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StandConfigRepository) daosToDomain(configs []dao.StandConfig) []domain.StandConfig {
	result := make([]domain.StandConfig, len(configs))
	for i, c := range configs {
		result[i] = r.daoToDomain(c)
	}

	return result
}

func (r *StandConfigRepository) domainToDao(c domain.StandConfig) dao.StandConfig {
	raw := domain.EncodeConfigData(c.ConfigData)
	if c.LegacyTotal != nil {
		// Keep the reserved metadata entry on round-trip so older readers
		// still find their total.
		raw[domain.MetaKey] = map[string]any{"totalPrice": *c.LegacyTotal}
	}

	return dao.StandConfig{
		ID:             c.ID,
		UserID:         c.UserID,
		StandOptionID:  c.StandOptionID,
		EventID:        c.EventID,
		ConfigData:     raw,
		TotalPrice:     c.TotalPrice,
		PriceBreakdown: c.PriceBreakdown,
		IsSubmitted:    c.IsSubmitted,
		PaymentStatus:  string(c.PaymentStatus),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r *StandConfigRepository) daoToDomain(c dao.StandConfig) domain.StandConfig {
	data, meta := domain.DecodeConfigData(c.ConfigData)

	config := domain.StandConfig{
		ID:             c.ID,
		UserID:         c.UserID,
		StandOptionID:  c.StandOptionID,
		EventID:        c.EventID,
		ConfigData:     data,
		TotalPrice:     c.TotalPrice,
		PriceBreakdown: c.PriceBreakdown,
		IsSubmitted:    c.IsSubmitted,
		PaymentStatus:  domain.PaymentStatus(c.PaymentStatus),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if meta != nil {
		config.LegacyTotal = meta.TotalPrice
	}

	return config
}
