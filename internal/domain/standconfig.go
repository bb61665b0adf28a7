package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

var (
	ErrConfigNotDraft     = errors.New("configuration is already submitted")
	ErrConfigNotSubmitted = errors.New("configuration has not been submitted")
)

// MetaKey is reserved inside persisted config data for bookkeeping written
// by older clients. It never resolves to a schema item.
const MetaKey = "_meta"

// FieldResponse is one exhibitor answer, tagged by the owning item's type.
// Text doubles as the upload URL for upload items; Selections carries the
// chosen option ids for select/image items.
type FieldResponse struct {
	Type       ItemType `json:"type,omitempty"`
	Text       string   `json:"text,omitempty"`
	Selections []string `json:"selections,omitempty"`
}

func (r FieldResponse) IsEmpty() bool {
	return strings.TrimSpace(r.Text) == "" && len(r.Selections) == 0
}

// SelectionIDs returns the selected option ids. Legacy data stored a
// single-choice answer as a bare string, which decodes into Text.
func (r FieldResponse) SelectionIDs() []string {
	if len(r.Selections) > 0 {
		return r.Selections
	}
	if strings.TrimSpace(r.Text) != "" {
		return []string{r.Text}
	}

	return nil
}

// ConfigData maps a StandItem id to the exhibitor's response.
type ConfigData map[string]FieldResponse

// LegacyMeta is the decoded reserved metadata entry. Its total is only
// consulted when a config predates persisted price fields.
type LegacyMeta struct {
	TotalPrice *float64 `json:"totalPrice,omitempty"`
}

// StandConfig is one exhibitor's persisted answers (and derived price)
// for one StandOption.
type StandConfig struct {
	ID            uint `json:"id"`
	UserID        uint `json:"user_id"`
	EventID       uint `json:"event_id"`
	StandOptionID uint `json:"stand_option_id"`

	ConfigData     ConfigData         `json:"config_data"`
	TotalPrice     float64            `json:"total_price"`
	PriceBreakdown map[string]float64 `json:"price_breakdown"`

	IsSubmitted   bool          `json:"is_submitted"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	// LegacyTotal comes from the reserved metadata key of older records.
	LegacyTotal *float64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveTotal prefers the persisted total and falls back to the
// legacy metadata total for records written before prices were stored.
func (c StandConfig) EffectiveTotal() float64 {
	if c.TotalPrice != 0 || c.LegacyTotal == nil {
		return c.TotalPrice
	}

	return *c.LegacyTotal
}

// ValidateResponse checks one response against its item's constraints.
// It does not enforce Required for empty responses; clearing a draft
// answer is always allowed, Required gates Submit and step navigation.
func ValidateResponse(item StandItem, resp FieldResponse) error {
	if resp.Type != "" && resp.Type != item.Type {
		return &ValidationError{ItemID: item.ID, Reason: fmt.Sprintf("response type %q does not match item type %q", resp.Type, item.Type)}
	}

	if item.Type.IsChoice() {
		ids := resp.SelectionIDs()
		if len(ids) > item.MaxSelections {
			return &ValidationError{ItemID: item.ID, Reason: fmt.Sprintf("at most %v selections allowed", item.MaxSelections)}
		}

		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				return &ValidationError{ItemID: item.ID, Reason: fmt.Sprintf("option %q selected twice", id)}
			}
			seen[id] = true

			if _, ok := item.FindOption(id); !ok {
				return &ValidationError{ItemID: item.ID, Reason: fmt.Sprintf("unknown option %q", id)}
			}
		}

		return nil
	}

	if len(resp.Selections) > 0 {
		return &ValidationError{ItemID: item.ID, Reason: fmt.Sprintf("%v items take a text response", item.Type)}
	}

	return nil
}

// Answered reports whether a response satisfies the item's Required flag.
func Answered(item StandItem, resp FieldResponse) bool {
	if item.Type.IsChoice() {
		return len(resp.SelectionIDs()) > 0
	}

	return strings.TrimSpace(resp.Text) != ""
}

// ApplyUpdate validates and stores a single answer while in draft.
// On a validation failure the stored state is left untouched.
func (c *StandConfig) ApplyUpdate(schema StandOption, itemID string, resp FieldResponse) error {
	if c.IsSubmitted {
		return ErrConfigNotDraft
	}

	item, ok := schema.FindItem(itemID)
	if !ok {
		return &ValidationError{ItemID: itemID, Reason: "unknown item"}
	}

	if err := ValidateResponse(item, resp); err != nil {
		return err
	}

	resp.Type = item.Type
	if c.ConfigData == nil {
		c.ConfigData = ConfigData{}
	}
	c.ConfigData[itemID] = resp
	c.UpdatedAt = time.Now()

	return nil
}

// SetPrice stores the pricing engine's output on the draft.
func (c *StandConfig) SetPrice(total float64, breakdown map[string]float64) {
	c.TotalPrice = total
	c.PriceBreakdown = breakdown
}

// Submit finalizes the draft: every required item must be answered.
// The supplied total/breakdown become the persisted price of record;
// later schema edits never change it.
func (c *StandConfig) Submit(schema StandOption, total float64, breakdown map[string]float64) error {
	if c.IsSubmitted {
		return ErrConfigNotDraft
	}

	var missing []string
	for _, item := range schema.Items {
		if !item.Required {
			continue
		}
		if !Answered(item, c.ConfigData[item.ID]) {
			missing = append(missing, item.ID)
		}
	}
	if len(missing) > 0 {
		return &IncompleteConfigurationError{MissingItemIDs: missing}
	}

	c.TotalPrice = total
	c.PriceBreakdown = breakdown
	c.IsSubmitted = true
	c.PaymentStatus = PaymentPending
	c.UpdatedAt = time.Now()

	return nil
}

// SetPaymentStatus applies an externally driven payment transition.
// Completed and cancelled are terminal for the current submission cycle;
// Reopen is the only sanctioned path out of them.
func (c *StandConfig) SetPaymentStatus(next PaymentStatus) error {
	if !c.IsSubmitted {
		return ErrConfigNotSubmitted
	}

	if next == c.PaymentStatus {
		return nil
	}

	allowed := map[PaymentStatus][]PaymentStatus{
		PaymentPending:    {PaymentProcessing, PaymentCompleted, PaymentCancelled},
		PaymentProcessing: {PaymentCompleted, PaymentCancelled},
	}

	for _, s := range allowed[c.PaymentStatus] {
		if s == next {
			c.PaymentStatus = next
			c.UpdatedAt = time.Now()

			return nil
		}
	}

	return &InvalidTransitionError{From: c.PaymentStatus, To: next}
}

// Reopen returns a submitted configuration to draft so the exhibitor may
// edit and resubmit. Payment status resets to pending regardless of the
// previous cycle's outcome.
func (c *StandConfig) Reopen() {
	c.IsSubmitted = false
	c.PaymentStatus = PaymentPending
	c.UpdatedAt = time.Now()
}

// DecodeConfigData converts a raw persisted mapping into tagged responses.
// It tolerates the legacy shapes (bare string, array of ids) and splits
// out the reserved metadata entry.
func DecodeConfigData(raw map[string]any) (ConfigData, *LegacyMeta) {
	if raw == nil {
		return ConfigData{}, nil
	}

	data := make(ConfigData, len(raw))
	var meta *LegacyMeta

	for key, value := range raw {
		if key == MetaKey {
			meta = decodeMeta(value)
			continue
		}

		data[key] = decodeResponse(value)
	}

	return data, meta
}

func decodeResponse(value any) FieldResponse {
	switch v := value.(type) {
	case string:
		return FieldResponse{Text: v}
	case []any:
		ids := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				ids = append(ids, s)
			}
		}

		return FieldResponse{Selections: ids}
	case map[string]any:
		var resp FieldResponse
		if s, ok := v["type"].(string); ok {
			resp.Type = ItemType(s)
		}
		if s, ok := v["text"].(string); ok {
			resp.Text = s
		}
		if list, ok := v["selections"].([]any); ok {
			for _, e := range list {
				if s, ok := e.(string); ok {
					resp.Selections = append(resp.Selections, s)
				}
			}
		}

		return resp
	default:
		return FieldResponse{}
	}
}

func decodeMeta(value any) *LegacyMeta {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var meta LegacyMeta
	if total, ok := m["totalPrice"].(float64); ok {
		meta.TotalPrice = &total
	}

	return &meta
}

// EncodeConfigData converts tagged responses back into the persisted
// JSON mapping.
func EncodeConfigData(data ConfigData) map[string]any {
	raw := make(map[string]any, len(data))
	for key, resp := range data {
		entry := map[string]any{}
		if resp.Type != "" {
			entry["type"] = string(resp.Type)
		}
		if resp.Text != "" {
			entry["text"] = resp.Text
		}
		if len(resp.Selections) > 0 {
			entry["selections"] = resp.Selections
		}
		raw[key] = entry
	}

	return raw
}
