package repository

import (
	"context"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/repository/dao"
)

var ErrStandOptionNotFound = dao.ErrStandOptionNotFound

type StandOptionDAO interface {
	Insert(ctx context.Context, option dao.StandOption) (dao.StandOption, error)
	Update(ctx context.Context, option dao.StandOption) (dao.StandOption, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (dao.StandOption, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.StandOption, error)
}

type StandOptionRepository struct {
	dao StandOptionDAO
}

func NewStandOptionRepository(dao StandOptionDAO) *StandOptionRepository {
	return &StandOptionRepository{
		dao: dao,
	}
}

func (r *StandOptionRepository) Create(ctx context.Context, option domain.StandOption) (domain.StandOption, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(option))
	if err != nil {
		return domain.StandOption{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StandOptionRepository) Update(ctx context.Context, option domain.StandOption) (domain.StandOption, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(option))
	if err != nil {
		return domain.StandOption{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StandOptionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *StandOptionRepository) FindByID(ctx context.Context, id uint) (domain.StandOption, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.StandOption{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StandOptionRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.StandOption, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	options := make([]domain.StandOption, len(found))
	for i, o := range found {
		options[i] = r.daoToDomain(o)
	}

	return options, nil
}

func (r *StandOptionRepository) domainToDao(o domain.StandOption) dao.StandOption {
	items := make(dao.StandItems, len(o.Items))
	for i, item := range o.Items {
		options := make([]dao.StandOptionItemDoc, len(item.Options))
		for j, opt := range item.Options {
			options[j] = dao.StandOptionItemDoc{
				ID:          opt.ID,
				Label:       opt.Label,
				Value:       opt.Value,
				Description: opt.Description,
				Price:       opt.Price,
			}
		}

		items[i] = dao.StandItemDoc{
			ID:            item.ID,
			Label:         item.Label,
			Description:   item.Description,
			Type:          string(item.Type),
			Required:      item.Required,
			Placeholder:   item.Placeholder,
			MaxSelections: item.MaxSelections,
			Options:       options,
		}
	}

	return dao.StandOption{
		ID:          o.ID,
		EventID:     o.EventID,
		Title:       o.Title,
		Description: o.Description,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (r *StandOptionRepository) daoToDomain(o dao.StandOption) domain.StandOption {
	items := make([]domain.StandItem, len(o.Items))
	for i, item := range o.Items {
		options := make([]domain.StandOptionItem, len(item.Options))
		for j, opt := range item.Options {
			options[j] = domain.StandOptionItem{
				ID:          opt.ID,
				Label:       opt.Label,
				Value:       opt.Value,
				Description: opt.Description,
				Price:       opt.Price,
			}
		}

		items[i] = domain.StandItem{
			ID:            item.ID,
			Label:         item.Label,
			Description:   item.Description,
			Type:          domain.ItemType(item.Type),
			Required:      item.Required,
			Placeholder:   item.Placeholder,
			MaxSelections: item.MaxSelections,
			Options:       options,
		}
	}

	return domain.StandOption{
		ID:          o.ID,
		EventID:     o.EventID,
		Title:       o.Title,
		Description: o.Description,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
