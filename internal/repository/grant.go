package repository

import (
	"context"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/repository/dao"
)

var ErrGrantNotFound = dao.ErrGrantNotFound

type GrantDAO interface {
	Upsert(ctx context.Context, grant dao.ExhibitorAccessGrant) (dao.ExhibitorAccessGrant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.ExhibitorAccessGrant, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.ExhibitorAccessGrant, error)
}

type GrantRepository struct {
	dao GrantDAO
}

func NewGrantRepository(dao GrantDAO) *GrantRepository {
	return &GrantRepository{
		dao: dao,
	}
}

func (r *GrantRepository) Upsert(ctx context.Context, grant domain.ExhibitorAccessGrant) (domain.ExhibitorAccessGrant, error) {
	saved, err := r.dao.Upsert(ctx, r.domainToDao(grant))
	if err != nil {
		return domain.ExhibitorAccessGrant{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *GrantRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.ExhibitorAccessGrant, error) {
	found, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.ExhibitorAccessGrant{}, fmt.Errorf("r.dao.FindByEventAndUser -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GrantRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.ExhibitorAccessGrant, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	grants := make([]domain.ExhibitorAccessGrant, len(found))
	for i, g := range found {
		grants[i] = r.daoToDomain(g)
	}

	return grants, nil
}

func (r *GrantRepository) domainToDao(g domain.ExhibitorAccessGrant) dao.ExhibitorAccessGrant {
	return dao.ExhibitorAccessGrant{
		ID:                   g.ID,
		EventID:              g.EventID,
		UserID:               g.UserID,
		IsEnabled:            g.IsEnabled,
		IsStandConfigEnabled: g.IsStandConfigEnabled,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}

func (r *GrantRepository) daoToDomain(g dao.ExhibitorAccessGrant) domain.ExhibitorAccessGrant {
	return domain.ExhibitorAccessGrant{
		ID:                   g.ID,
		EventID:              g.EventID,
		UserID:               g.UserID,
		IsEnabled:            g.IsEnabled,
		IsStandConfigEnabled: g.IsStandConfigEnabled,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}
