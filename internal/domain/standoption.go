package domain

import (
	"fmt"
	"time"
)

// ItemType is the kind of field a StandItem renders as in the wizard.
type ItemType string

const (
	ItemTypeText   ItemType = "text"
	ItemTypeUpload ItemType = "upload"
	ItemTypeSelect ItemType = "select"
	ItemTypeImage  ItemType = "image"
)

func (t ItemType) IsChoice() bool {
	return t == ItemTypeSelect || t == ItemTypeImage
}

// StandOption is an admin-authored schema describing one configurable
// stand product for an event. Item order defines wizard step order.
type StandOption struct {
	ID          uint        `json:"id"`
	EventID     uint        `json:"event_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Items       []StandItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// StandItem is one field/step within a StandOption.
type StandItem struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Type        ItemType `json:"type"`
	Required    bool     `json:"required"`

	// Placeholder applies to text items only.
	Placeholder string `json:"placeholder,omitempty"`

	// MaxSelections and Options apply to select/image items only.
	// MaxSelections of 1 means single-choice.
	MaxSelections int               `json:"max_selections,omitempty"`
	Options       []StandOptionItem `json:"options,omitempty"`
}

// StandOptionItem is one selectable, priced choice within a select/image item.
type StandOptionItem struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Value       string  `json:"value,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// FindItem returns the item with the given id, or false when the schema
// does not contain it.
func (o StandOption) FindItem(itemID string) (StandItem, bool) {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item, true
		}
	}

	return StandItem{}, false
}

// FindOption resolves an option id against the item's option list.
// Persisted configs may reference options that were later removed, so a
// miss is not an error for callers; they degrade to the raw id.
func (i StandItem) FindOption(optionID string) (StandOptionItem, bool) {
	for _, opt := range i.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}

	return StandOptionItem{}, false
}

// Validate checks the structural invariants of a schema: unique item ids,
// unique option ids per item, sane selection bounds and non-negative prices.
func (o StandOption) Validate() error {
	itemIDs := make(map[string]bool, len(o.Items))
	for _, item := range o.Items {
		if item.ID == "" {
			return &ValidationError{ItemID: item.ID, Reason: "item id must not be empty"}
		}
		if itemIDs[item.ID] {
			return &ValidationError{ItemID: item.ID, Reason: "duplicate item id"}
		}
		itemIDs[item.ID] = true

		if err := item.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (i StandItem) validate() error {
	switch i.Type {
	case ItemTypeText, ItemTypeUpload:
		if len(i.Options) > 0 {
			return &ValidationError{ItemID: i.ID, Reason: fmt.Sprintf("%v items must not carry options", i.Type)}
		}
	case ItemTypeSelect, ItemTypeImage:
		if i.MaxSelections < 1 {
			return &ValidationError{ItemID: i.ID, Reason: "max_selections must be at least 1"}
		}

		optionIDs := make(map[string]bool, len(i.Options))
		for _, opt := range i.Options {
			if opt.ID == "" {
				return &ValidationError{ItemID: i.ID, Reason: "option id must not be empty"}
			}
			if optionIDs[opt.ID] {
				return &ValidationError{ItemID: i.ID, Reason: fmt.Sprintf("duplicate option id %q", opt.ID)}
			}
			optionIDs[opt.ID] = true

			if opt.Price < 0 {
				return &ValidationError{ItemID: i.ID, Reason: fmt.Sprintf("option %q has a negative price", opt.ID)}
			}
		}
	default:
		return &ValidationError{ItemID: i.ID, Reason: fmt.Sprintf("unknown item type %q", i.Type)}
	}

	return nil
}
