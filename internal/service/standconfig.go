package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/pricing"
	"github.com/salasintercc/expo-admin-api/internal/repository"
)

var ErrStandConfigNotFound = repository.ErrStandConfigNotFound

type StandConfigRepository interface {
	Create(ctx context.Context, config domain.StandConfig) (domain.StandConfig, error)
	Update(ctx context.Context, config domain.StandConfig) (domain.StandConfig, error)
	FindByID(ctx context.Context, id uint) (domain.StandConfig, error)
	FindByUserAndOption(ctx context.Context, userID, standOptionID uint) (domain.StandConfig, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) ([]domain.StandConfig, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.StandConfig, error)
}

// StandConfigService owns the draft lifecycle. It is the ConfigStore
// the wizard runs against, and the surface the payment webhook and the
// admin endpoints drive status changes through.
type StandConfigService struct {
	repo StandConfigRepository
}

func NewStandConfigService(repo StandConfigRepository) *StandConfigService {
	return &StandConfigService{
		repo: repo,
	}
}

// GetOrCreateDraft returns the user's configuration for the given stand
// option, creating an empty draft on first access. The (user, option)
// pair is unique, so reopening the wizard resumes the same record.
func (s *StandConfigService) GetOrCreateDraft(ctx context.Context, userID uint, schema domain.StandOption) (domain.StandConfig, error) {
	existing, err := s.repo.FindByUserAndOption(ctx, userID, schema.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrStandConfigNotFound) {
		return domain.StandConfig{}, fmt.Errorf("s.repo.FindByUserAndOption -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.StandConfig{
		UserID:        userID,
		StandOptionID: schema.ID,
		EventID:       schema.EventID,
		ConfigData:    domain.ConfigData{},
		PaymentStatus: domain.PaymentPending,
	})
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateItem applies a single response and reprices the draft so the
// running total stays current between saves.
func (s *StandConfigService) UpdateItem(ctx context.Context, cfg domain.StandConfig, schema domain.StandOption, itemID string, resp domain.FieldResponse) (domain.StandConfig, error) {
	if err := cfg.ApplyUpdate(schema, itemID, resp); err != nil {
		return domain.StandConfig{}, err
	}

	result := pricing.Compute(schema, cfg.ConfigData)
	cfg.SetPrice(result.Total, result.Breakdown)

	updated, err := s.repo.Update(ctx, cfg)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Submit finalizes the draft. The price is recomputed from the schema
// at submission time, never trusted from the client.
func (s *StandConfigService) Submit(ctx context.Context, cfg domain.StandConfig, schema domain.StandOption) (domain.StandConfig, error) {
	result := pricing.Compute(schema, cfg.ConfigData)
	if err := cfg.Submit(schema, result.Total, result.Breakdown); err != nil {
		return domain.StandConfig{}, err
	}

	updated, err := s.repo.Update(ctx, cfg)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *StandConfigService) GetByID(ctx context.Context, id uint) (domain.StandConfig, error) {
	cfg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return cfg, nil
}

func (s *StandConfigService) SetPaymentStatus(ctx context.Context, configID uint, status domain.PaymentStatus) (domain.StandConfig, error) {
	cfg, err := s.repo.FindByID(ctx, configID)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = cfg.SetPaymentStatus(status); err != nil {
		return domain.StandConfig{}, err
	}

	updated, err := s.repo.Update(ctx, cfg)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Reopen puts a submitted configuration back into draft so the
// exhibitor can edit it again. Admin only.
func (s *StandConfigService) Reopen(ctx context.Context, configID uint) (domain.StandConfig, error) {
	cfg, err := s.repo.FindByID(ctx, configID)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !cfg.IsSubmitted {
		return domain.StandConfig{}, domain.ErrConfigNotSubmitted
	}
	cfg.Reopen()

	updated, err := s.repo.Update(ctx, cfg)
	if err != nil {
		return domain.StandConfig{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *StandConfigService) ListByUserAndEvent(ctx context.Context, userID, eventID uint) ([]domain.StandConfig, error) {
	configs, err := s.repo.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserAndEvent -> %w", err)
	}

	return configs, nil
}

func (s *StandConfigService) ListByEvent(ctx context.Context, eventID uint) ([]domain.StandConfig, error) {
	configs, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return configs, nil
}
