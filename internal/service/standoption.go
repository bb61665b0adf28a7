package service

import (
	"context"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/repository"
)

var ErrStandOptionNotFound = repository.ErrStandOptionNotFound

type StandOptionRepository interface {
	Create(ctx context.Context, option domain.StandOption) (domain.StandOption, error)
	Update(ctx context.Context, option domain.StandOption) (domain.StandOption, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (domain.StandOption, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.StandOption, error)
}

type StandOptionService struct {
	repo StandOptionRepository
}

func NewStandOptionService(repo StandOptionRepository) *StandOptionService {
	return &StandOptionService{
		repo: repo,
	}
}

func (s *StandOptionService) CreateStandOption(ctx context.Context, option domain.StandOption) (domain.StandOption, error) {
	if err := option.Validate(); err != nil {
		return domain.StandOption{}, err
	}

	created, err := s.repo.Create(ctx, option)
	if err != nil {
		return domain.StandOption{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StandOptionService) UpdateStandOption(ctx context.Context, option domain.StandOption) (domain.StandOption, error) {
	if err := option.Validate(); err != nil {
		return domain.StandOption{}, err
	}

	updated, err := s.repo.Update(ctx, option)
	if err != nil {
		return domain.StandOption{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *StandOptionService) DeleteStandOption(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *StandOptionService) GetStandOption(ctx context.Context, id uint) (domain.StandOption, error) {
	option, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.StandOption{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return option, nil
}

func (s *StandOptionService) ListByEvent(ctx context.Context, eventID uint) ([]domain.StandOption, error) {
	options, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return options, nil
}
