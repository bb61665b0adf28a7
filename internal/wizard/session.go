// Package wizard sequences one or more stand option schemas into a single
// guided flow. A session owns one draft configuration per schema and
// enforces the per-step selection constraints; persistence and pricing sit
// behind the ConfigStore.
package wizard

import (
	"context"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
)

// AccessGate authorizes entry into the wizard for an (event, user) pair.
type AccessGate interface {
	CanConfigure(ctx context.Context, eventID, userID uint) (bool, error)
}

// ConfigStore loads, mutates and finalizes draft configurations.
type ConfigStore interface {
	GetOrCreateDraft(ctx context.Context, userID uint, schema domain.StandOption) (domain.StandConfig, error)
	UpdateItem(ctx context.Context, cfg domain.StandConfig, schema domain.StandOption, itemID string, resp domain.FieldResponse) (domain.StandConfig, error)
	Submit(ctx context.Context, cfg domain.StandConfig, schema domain.StandOption) (domain.StandConfig, error)
}

// Step is one wizard screen: a single item of a single stand option.
type Step struct {
	StandOptionID uint             `json:"stand_option_id"`
	Item          domain.StandItem `json:"item"`
}

// Outcome aggregates the result of completing a session. Already-submitted
// configurations stay submitted even when a sibling schema fails; the
// caller decides whether to retry only the failed ones.
type Outcome struct {
	Submitted []domain.StandConfig
	Failed    map[uint]error
}

func (o Outcome) AllSubmitted() bool {
	return len(o.Failed) == 0
}

type Session struct {
	userID  uint
	eventID uint

	schemas []domain.StandOption
	drafts  map[uint]domain.StandConfig
	steps   []Step
	pos     int

	gate  AccessGate
	store ConfigStore
}

// NewSession authorizes the user through the access gate, flattens the
// schemas into an ordered step list and loads (or creates) one draft per
// schema.
func NewSession(ctx context.Context, gate AccessGate, store ConfigStore, userID, eventID uint, schemas []domain.StandOption) (*Session, error) {
	allowed, err := gate.CanConfigure(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("gate.CanConfigure -> %w", err)
	}
	if !allowed {
		return nil, &domain.PermissionDeniedError{EventID: eventID, UserID: userID}
	}

	s := &Session{
		userID:  userID,
		eventID: eventID,
		schemas: schemas,
		drafts:  make(map[uint]domain.StandConfig, len(schemas)),
		gate:    gate,
		store:   store,
	}

	for _, schema := range schemas {
		for _, item := range schema.Items {
			s.steps = append(s.steps, Step{StandOptionID: schema.ID, Item: item})
		}

		draft, err := store.GetOrCreateDraft(ctx, userID, schema)
		if err != nil {
			return nil, fmt.Errorf("store.GetOrCreateDraft -> %w", err)
		}
		s.drafts[schema.ID] = draft
	}

	return s, nil
}

func (s *Session) Steps() []Step {
	return s.steps
}

// Current returns the active step, or false when the session has no steps.
func (s *Session) Current() (Step, bool) {
	if len(s.steps) == 0 {
		return Step{}, false
	}

	return s.steps[s.pos], true
}

// Draft returns the in-session draft for one stand option.
func (s *Session) Draft(standOptionID uint) (domain.StandConfig, bool) {
	draft, ok := s.drafts[standOptionID]
	return draft, ok
}

// Advance moves to the next step. A required item blocks forward
// navigation until it has an answer; non-required items may be skipped.
func (s *Session) Advance() error {
	step, ok := s.Current()
	if !ok || s.pos == len(s.steps)-1 {
		return nil
	}

	if step.Item.Required {
		draft := s.drafts[step.StandOptionID]
		if !domain.Answered(step.Item, draft.ConfigData[step.Item.ID]) {
			return &domain.ValidationError{ItemID: step.Item.ID, Reason: "required item must be answered before continuing"}
		}
	}

	s.pos++

	return nil
}

// Back moves to the previous step; it never blocks.
func (s *Session) Back() {
	if s.pos > 0 {
		s.pos--
	}
}

// SetText stores a text answer for the given item.
func (s *Session) SetText(ctx context.Context, standOptionID uint, itemID, text string) error {
	return s.update(ctx, standOptionID, itemID, domain.FieldResponse{Text: text})
}

// SetUpload stores the upload backend's URL for the given item.
func (s *Session) SetUpload(ctx context.Context, standOptionID uint, itemID, url string) error {
	return s.update(ctx, standOptionID, itemID, domain.FieldResponse{Text: url})
}

// Select adds (or, for single-choice items, replaces) a selection.
// Selecting an already-selected id is a no-op; once the selection is at
// the item's bound, further additions are refused without mutating state.
func (s *Session) Select(ctx context.Context, standOptionID uint, itemID, optionID string) error {
	schema, draft, err := s.lookup(standOptionID)
	if err != nil {
		return err
	}

	item, ok := schema.FindItem(itemID)
	if !ok {
		return &domain.ValidationError{ItemID: itemID, Reason: "unknown item"}
	}
	if !item.Type.IsChoice() {
		return &domain.ValidationError{ItemID: itemID, Reason: "item is not selectable"}
	}

	current := draft.ConfigData[itemID].SelectionIDs()

	if item.MaxSelections == 1 {
		return s.update(ctx, standOptionID, itemID, domain.FieldResponse{Selections: []string{optionID}})
	}

	for _, id := range current {
		if id == optionID {
			return nil
		}
	}

	if len(current) >= item.MaxSelections {
		return &domain.ValidationError{ItemID: itemID, Reason: fmt.Sprintf("at most %v selections allowed", item.MaxSelections)}
	}

	next := append(append([]string{}, current...), optionID)

	return s.update(ctx, standOptionID, itemID, domain.FieldResponse{Selections: next})
}

// Deselect removes a selection; removing always succeeds, even when the
// id is not currently selected.
func (s *Session) Deselect(ctx context.Context, standOptionID uint, itemID, optionID string) error {
	_, draft, err := s.lookup(standOptionID)
	if err != nil {
		return err
	}

	current := draft.ConfigData[itemID].SelectionIDs()
	next := make([]string, 0, len(current))
	for _, id := range current {
		if id != optionID {
			next = append(next, id)
		}
	}
	if len(next) == len(current) {
		return nil
	}

	return s.update(ctx, standOptionID, itemID, domain.FieldResponse{Selections: next})
}

// Complete submits every draft in the batch. Submissions are independent:
// a failure on one stand option neither aborts nor rolls back the others.
func (s *Session) Complete(ctx context.Context) (Outcome, error) {
	allowed, err := s.gate.CanConfigure(ctx, s.eventID, s.userID)
	if err != nil {
		return Outcome{}, fmt.Errorf("s.gate.CanConfigure -> %w", err)
	}
	if !allowed {
		return Outcome{}, &domain.PermissionDeniedError{EventID: s.eventID, UserID: s.userID}
	}

	outcome := Outcome{Failed: map[uint]error{}}

	for _, schema := range s.schemas {
		draft := s.drafts[schema.ID]
		if draft.IsSubmitted {
			outcome.Submitted = append(outcome.Submitted, draft)
			continue
		}

		submitted, err := s.store.Submit(ctx, draft, schema)
		if err != nil {
			outcome.Failed[schema.ID] = err
			continue
		}

		s.drafts[schema.ID] = submitted
		outcome.Submitted = append(outcome.Submitted, submitted)
	}

	return outcome, nil
}

// Cancel drops the in-memory drafts. Previously persisted drafts on the
// backing store are untouched.
func (s *Session) Cancel() {
	s.drafts = map[uint]domain.StandConfig{}
	s.steps = nil
	s.pos = 0
}

func (s *Session) update(ctx context.Context, standOptionID uint, itemID string, resp domain.FieldResponse) error {
	schema, draft, err := s.lookup(standOptionID)
	if err != nil {
		return err
	}

	updated, err := s.store.UpdateItem(ctx, draft, schema, itemID, resp)
	if err != nil {
		return err
	}

	s.drafts[standOptionID] = updated

	return nil
}

func (s *Session) lookup(standOptionID uint) (domain.StandOption, domain.StandConfig, error) {
	draft, ok := s.drafts[standOptionID]
	if !ok {
		return domain.StandOption{}, domain.StandConfig{}, fmt.Errorf("stand option %v is not part of this session", standOptionID)
	}

	for _, schema := range s.schemas {
		if schema.ID == standOptionID {
			return schema, draft, nil
		}
	}

	return domain.StandOption{}, domain.StandConfig{}, fmt.Errorf("stand option %v is not part of this session", standOptionID)
}
