// Package export maps persisted stand configurations back to
// human-readable documents. The same canonical document feeds both the
// JSON export and the PDF renderer, so the two never diverge in content.
package export

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/salasintercc/expo-admin-api/internal/domain"
)

// SchemaSource fetches stand option schemas for label resolution.
type SchemaSource interface {
	GetStandOption(ctx context.Context, id uint) (domain.StandOption, error)
}

// SchemaCache memoizes schema lookups for the lifetime of one export
// operation. A schema that cannot be fetched (deleted, or the source is
// unreachable) is remembered as missing so the resolver degrades to raw
// ids instead of retrying or failing the export.
type SchemaCache struct {
	source  SchemaSource
	schemas map[uint]domain.StandOption
	missing map[uint]bool
}

func NewSchemaCache(source SchemaSource) *SchemaCache {
	return &SchemaCache{
		source:  source,
		schemas: map[uint]domain.StandOption{},
		missing: map[uint]bool{},
	}
}

func (c *SchemaCache) Get(ctx context.Context, id uint) (domain.StandOption, bool) {
	if schema, ok := c.schemas[id]; ok {
		return schema, true
	}
	if c.missing[id] {
		return domain.StandOption{}, false
	}

	schema, err := c.source.GetStandOption(ctx, id)
	if err != nil {
		c.missing[id] = true
		return domain.StandOption{}, false
	}

	c.schemas[id] = schema

	return schema, true
}

// Document is the canonical export shape for one exhibitor and event.
type Document struct {
	Exhibitor      Exhibitor                        `json:"exhibitor"`
	Event          EventInfo                        `json:"event"`
	ExportDate     time.Time                        `json:"exportDate"`
	GrandTotal     *float64                         `json:"grandTotal,omitempty"`
	Configurations []Section                        `json:"configurations"`
	Warnings       []domain.SchemaResolutionWarning `json:"warnings,omitempty"`
}

type Exhibitor struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type EventInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Section renders one configuration against its stand option.
type Section struct {
	Type           SectionType          `json:"type"`
	IsSubmitted    bool                 `json:"isSubmitted"`
	PaymentStatus  domain.PaymentStatus `json:"paymentStatus"`
	TotalPrice     float64              `json:"totalPrice"`
	PriceBreakdown map[string]float64   `json:"priceBreakdown"`
	Items          []ResolvedItem       `json:"items"`
}

type SectionType struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ResolvedItem is one answered item with ids resolved to labels.
// Response is a string for text/upload items and a []ResolvedSelection
// for select/image items.
type ResolvedItem struct {
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Type        domain.ItemType `json:"type"`
	Response    any             `json:"response"`
}

type ResolvedSelection struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Resolver builds export documents. It is a read-only consumer: schema
// lookups go through the per-operation cache and every unresolved
// reference degrades to the raw id with a collected warning.
type Resolver struct {
	schemas *SchemaCache
}

func NewResolver(schemas *SchemaCache) *Resolver {
	return &Resolver{schemas: schemas}
}

// Resolve renders the given configurations for one exhibitor. GrandTotal
// is populated when more than one configuration is included.
func (r *Resolver) Resolve(ctx context.Context, exhibitor domain.User, event domain.Event, configs []domain.StandConfig) Document {
	doc := Document{
		Exhibitor:  Exhibitor{ID: exhibitor.ID, Email: exhibitor.Email, Name: exhibitor.Name},
		Event:      EventInfo{ID: event.ID, Name: event.Name},
		ExportDate: time.Now(),
	}

	for _, cfg := range configs {
		section, warnings := r.resolveSection(ctx, cfg)
		doc.Configurations = append(doc.Configurations, section)
		doc.Warnings = append(doc.Warnings, warnings...)
	}

	if len(configs) > 1 {
		grandTotal := 0.0
		for _, section := range doc.Configurations {
			grandTotal += section.TotalPrice
		}
		doc.GrandTotal = &grandTotal
	}

	return doc
}

func (r *Resolver) resolveSection(ctx context.Context, cfg domain.StandConfig) (Section, []domain.SchemaResolutionWarning) {
	section := Section{
		Type:           SectionType{ID: cfg.StandOptionID, Title: strconv.FormatUint(uint64(cfg.StandOptionID), 10)},
		IsSubmitted:    cfg.IsSubmitted,
		PaymentStatus:  cfg.PaymentStatus,
		TotalPrice:     cfg.EffectiveTotal(),
		PriceBreakdown: cfg.PriceBreakdown,
	}

	var warnings []domain.SchemaResolutionWarning

	schema, ok := r.schemas.Get(ctx, cfg.StandOptionID)
	if !ok {
		// The stand option was deleted after submission; keep the id as
		// the title and render raw responses.
		warnings = append(warnings, domain.SchemaResolutionWarning{StandOptionID: cfg.StandOptionID})
		for itemID, resp := range cfg.ConfigData {
			section.Items = append(section.Items, rawItem(itemID, resp))
		}

		return section, warnings
	}

	section.Type.Title = schema.Title

	answered := make(map[string]bool, len(cfg.ConfigData))

	for _, item := range schema.Items {
		resp, ok := cfg.ConfigData[item.ID]
		if !ok || resp.IsEmpty() {
			continue
		}
		answered[item.ID] = true

		resolved := ResolvedItem{
			Label:       item.Label,
			Description: item.Description,
			Type:        item.Type,
		}

		if item.Type.IsChoice() {
			var selections []ResolvedSelection
			for _, id := range resp.SelectionIDs() {
				opt, found := item.FindOption(id)
				if !found {
					warnings = append(warnings, domain.SchemaResolutionWarning{
						StandOptionID: schema.ID,
						ItemID:        item.ID,
						OptionID:      id,
					})
					selections = append(selections, ResolvedSelection{ID: id, Label: id})
					continue
				}

				selections = append(selections, ResolvedSelection{
					ID:          opt.ID,
					Label:       opt.Label,
					Price:       opt.Price,
					Description: opt.Description,
				})
			}
			resolved.Response = selections
		} else {
			resolved.Response = resp.Text
		}

		section.Items = append(section.Items, resolved)
	}

	// Responses whose item was removed from the schema keep their raw id
	// as the label.
	for itemID, resp := range cfg.ConfigData {
		if answered[itemID] || resp.IsEmpty() {
			continue
		}
		if _, ok := schema.FindItem(itemID); ok {
			continue
		}

		warnings = append(warnings, domain.SchemaResolutionWarning{StandOptionID: schema.ID, ItemID: itemID})
		section.Items = append(section.Items, rawItem(itemID, resp))
	}

	return section, warnings
}

func rawItem(itemID string, resp domain.FieldResponse) ResolvedItem {
	item := ResolvedItem{
		Label: itemID,
		Type:  resp.Type,
	}

	if ids := resp.Selections; len(ids) > 0 {
		selections := make([]ResolvedSelection, 0, len(ids))
		for _, id := range ids {
			selections = append(selections, ResolvedSelection{ID: id, Label: id})
		}
		item.Response = selections
	} else {
		item.Response = resp.Text
	}

	return item
}

// Filename builds the download name for an export: the exhibitor or stand
// option name lowercased with whitespace collapsed to hyphens, suffixed
// with "-config" and the extension.
func Filename(name, ext string) string {
	fields := strings.Fields(strings.ToLower(name))
	base := strings.Join(fields, "-")
	if base == "" {
		base = "stand"
	}

	return base + "-config." + ext
}
