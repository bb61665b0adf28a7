package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/salasintercc/expo-admin-api/internal/domain"
)

type StandOptionItemRequest struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type StandItemRequest struct {
	ID            string                   `json:"id"`
	Label         string                   `json:"label"`
	Description   string                   `json:"description"`
	Type          string                   `json:"type"`
	Required      bool                     `json:"required"`
	Placeholder   string                   `json:"placeholder"`
	MaxSelections int                      `json:"max_selections"`
	Options       []StandOptionItemRequest `json:"options"`
}

type SaveStandOptionRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Items       []StandItemRequest `json:"items"`
}

// Validate checks the envelope only. Schema-level rules (unique item
// ids, option prices, selection bounds) live on the domain type.
func (req *SaveStandOptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Items, validation.Required),
	)
}

// ToDomain maps the request onto the domain schema for a given event.
func (req *SaveStandOptionRequest) ToDomain(eventID uint) domain.StandOption {
	items := make([]domain.StandItem, len(req.Items))
	for i, item := range req.Items {
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
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		Items:       items,
	}
}
