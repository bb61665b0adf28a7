package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/repository"
)

type GrantRepository interface {
	Upsert(ctx context.Context, grant domain.ExhibitorAccessGrant) (domain.ExhibitorAccessGrant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.ExhibitorAccessGrant, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.ExhibitorAccessGrant, error)
}

// AccessService decides whether an exhibitor may open the stand
// configuration wizard for an event. No grant record means no access.
type AccessService struct {
	repo GrantRepository
}

func NewAccessService(repo GrantRepository) *AccessService {
	return &AccessService{
		repo: repo,
	}
}

func (s *AccessService) CanConfigure(ctx context.Context, eventID, userID uint) (bool, error) {
	grant, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGrantNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.FindByEventAndUser -> %w", err)
	}

	return grant.CanConfigure(), nil
}

// Grant enables stand configuration for the (event, user) pair.
// Calling it again on an existing grant is a no-op update.
func (s *AccessService) Grant(ctx context.Context, eventID, userID uint) (domain.ExhibitorAccessGrant, error) {
	grant, err := s.repo.Upsert(ctx, domain.ExhibitorAccessGrant{
		EventID:              eventID,
		UserID:               userID,
		IsEnabled:            true,
		IsStandConfigEnabled: true,
	})
	if err != nil {
		return domain.ExhibitorAccessGrant{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return grant, nil
}

// Revoke disables stand configuration but keeps the grant record so the
// audit trail survives. Revoking a user without a grant creates a
// disabled one.
func (s *AccessService) Revoke(ctx context.Context, eventID, userID uint) (domain.ExhibitorAccessGrant, error) {
	grant, err := s.repo.Upsert(ctx, domain.ExhibitorAccessGrant{
		EventID:              eventID,
		UserID:               userID,
		IsEnabled:            false,
		IsStandConfigEnabled: false,
	})
	if err != nil {
		return domain.ExhibitorAccessGrant{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return grant, nil
}

func (s *AccessService) ListByEvent(ctx context.Context, eventID uint) ([]domain.ExhibitorAccessGrant, error) {
	grants, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return grants, nil
}
