package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/pricing"
)

type fakeGate struct {
	allowed bool
}

func (g *fakeGate) CanConfigure(_ context.Context, _, _ uint) (bool, error) {
	return g.allowed, nil
}

// fakeStore keeps drafts in memory while applying the same domain rules
// as the real config service.
type fakeStore struct {
	nextID uint
	saved  map[uint]domain.StandConfig
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[uint]domain.StandConfig{}}
}

func (s *fakeStore) GetOrCreateDraft(_ context.Context, userID uint, schema domain.StandOption) (domain.StandConfig, error) {
	if cfg, ok := s.saved[schema.ID]; ok {
		return cfg, nil
	}

	s.nextID++
	cfg := domain.StandConfig{
		ID:            s.nextID,
		UserID:        userID,
		EventID:       schema.EventID,
		StandOptionID: schema.ID,
		ConfigData:    domain.ConfigData{},
		PaymentStatus: domain.PaymentPending,
	}
	s.saved[schema.ID] = cfg

	return cfg, nil
}

func (s *fakeStore) UpdateItem(_ context.Context, cfg domain.StandConfig, schema domain.StandOption, itemID string, resp domain.FieldResponse) (domain.StandConfig, error) {
	if err := cfg.ApplyUpdate(schema, itemID, resp); err != nil {
		return domain.StandConfig{}, err
	}

	result := pricing.Compute(schema, cfg.ConfigData)
	cfg.SetPrice(result.Total, result.Breakdown)
	s.saved[schema.ID] = cfg

	return cfg, nil
}

func (s *fakeStore) Submit(_ context.Context, cfg domain.StandConfig, schema domain.StandOption) (domain.StandConfig, error) {
	result := pricing.Compute(schema, cfg.ConfigData)
	if err := cfg.Submit(schema, result.Total, result.Breakdown); err != nil {
		return domain.StandConfig{}, err
	}
	s.saved[schema.ID] = cfg

	return cfg, nil
}

func boothSchema() domain.StandOption {
	return domain.StandOption{
		ID:      1,
		EventID: 10,
		Title:   "Booth",
		Items: []domain.StandItem{
			{
				ID:            "size",
				Label:         "Booth Size",
				Type:          domain.ItemTypeSelect,
				Required:      true,
				MaxSelections: 1,
				Options: []domain.StandOptionItem{
					{ID: "a", Label: "Basic", Price: 100},
					{ID: "b", Label: "Premium", Price: 250},
				},
			},
			{
				ID:            "extras",
				Label:         "Extras",
				Type:          domain.ItemTypeSelect,
				MaxSelections: 2,
				Options: []domain.StandOptionItem{
					{ID: "screen", Label: "Screen", Price: 80},
					{ID: "fridge", Label: "Fridge", Price: 40},
					{ID: "banner", Label: "Banner", Price: 30},
				},
			},
		},
	}
}

func furnitureSchema() domain.StandOption {
	return domain.StandOption{
		ID:      2,
		EventID: 10,
		Title:   "Furniture",
		Items: []domain.StandItem{
			{ID: "notes", Label: "Notes", Type: domain.ItemTypeText, Required: true},
		},
	}
}

func newTestSession(t *testing.T, schemas ...domain.StandOption) (*Session, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	s, err := NewSession(context.Background(), &fakeGate{allowed: true}, store, 7, 10, schemas)
	require.NoError(t, err)

	return s, store
}

func TestNewSession_GateDefaultDeny(t *testing.T) {
	_, err := NewSession(context.Background(), &fakeGate{}, newFakeStore(), 7, 10, []domain.StandOption{boothSchema()})

	var denied *domain.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, uint(10), denied.EventID)
	assert.Equal(t, uint(7), denied.UserID)
}

func TestSession_FlattensStepsInSchemaOrder(t *testing.T) {
	s, _ := newTestSession(t, boothSchema(), furnitureSchema())

	steps := s.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, "size", steps[0].Item.ID)
	assert.Equal(t, "extras", steps[1].Item.ID)
	assert.Equal(t, "notes", steps[2].Item.ID)
	assert.Equal(t, uint(2), steps[2].StandOptionID)
}

func TestSession_SingleChoiceReplaces(t *testing.T) {
	s, _ := newTestSession(t, boothSchema())
	ctx := context.Background()

	require.NoError(t, s.Select(ctx, 1, "size", "a"))
	require.NoError(t, s.Select(ctx, 1, "size", "b"))

	draft, _ := s.Draft(1)
	assert.Equal(t, []string{"b"}, draft.ConfigData["size"].Selections)
	assert.Equal(t, 250.0, draft.TotalPrice)
}

func TestSession_MaxSelectionsBound(t *testing.T) {
	s, _ := newTestSession(t, boothSchema())
	ctx := context.Background()

	require.NoError(t, s.Select(ctx, 1, "extras", "screen"))
	require.NoError(t, s.Select(ctx, 1, "extras", "fridge"))

	// The third addition is refused and must not grow the selection.
	err := s.Select(ctx, 1, "extras", "banner")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	draft, _ := s.Draft(1)
	assert.Len(t, draft.ConfigData["extras"].Selections, 2)

	// Selecting an id that is already present stays a no-op.
	assert.NoError(t, s.Select(ctx, 1, "extras", "screen"))

	// Removing always succeeds and frees a slot.
	require.NoError(t, s.Deselect(ctx, 1, "extras", "fridge"))
	require.NoError(t, s.Select(ctx, 1, "extras", "banner"))

	draft, _ = s.Draft(1)
	assert.ElementsMatch(t, []string{"screen", "banner"}, draft.ConfigData["extras"].Selections)
}

func TestSession_RequiredBlocksAdvance(t *testing.T) {
	s, _ := newTestSession(t, boothSchema())
	ctx := context.Background()

	err := s.Advance()
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "size", vErr.ItemID)

	require.NoError(t, s.Select(ctx, 1, "size", "a"))
	require.NoError(t, s.Advance())

	step, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "extras", step.Item.ID)
}

func TestSession_CompleteEndToEnd(t *testing.T) {
	s, _ := newTestSession(t, boothSchema())
	ctx := context.Background()

	require.NoError(t, s.Select(ctx, 1, "size", "b"))

	outcome, err := s.Complete(ctx)
	require.NoError(t, err)
	require.True(t, outcome.AllSubmitted())
	require.Len(t, outcome.Submitted, 1)

	cfg := outcome.Submitted[0]
	assert.True(t, cfg.IsSubmitted)
	assert.Equal(t, domain.PaymentPending, cfg.PaymentStatus)
	assert.Equal(t, 250.0, cfg.TotalPrice)
	assert.Equal(t, map[string]float64{"Booth Size": 250}, cfg.PriceBreakdown)
}

func TestSession_CompletePartialSuccess(t *testing.T) {
	s, store := newTestSession(t, boothSchema(), furnitureSchema())
	ctx := context.Background()

	// Booth is complete; furniture still misses its required notes item.
	require.NoError(t, s.Select(ctx, 1, "size", "a"))

	outcome, err := s.Complete(ctx)
	require.NoError(t, err)
	assert.False(t, outcome.AllSubmitted())

	require.Len(t, outcome.Submitted, 1)
	assert.Equal(t, uint(1), outcome.Submitted[0].StandOptionID)

	var incomplete *domain.IncompleteConfigurationError
	require.ErrorAs(t, outcome.Failed[2], &incomplete)
	assert.Equal(t, []string{"notes"}, incomplete.MissingItemIDs)

	// Retrying after the fix only submits the failed schema; the booth
	// stays submitted from the first attempt.
	require.NoError(t, s.SetText(ctx, 2, "notes", "two chairs please"))

	outcome, err = s.Complete(ctx)
	require.NoError(t, err)
	assert.True(t, outcome.AllSubmitted())
	assert.Len(t, outcome.Submitted, 2)

	assert.True(t, store.saved[1].IsSubmitted)
	assert.True(t, store.saved[2].IsSubmitted)
}

func TestSession_CancelKeepsPersistedDrafts(t *testing.T) {
	s, store := newTestSession(t, boothSchema())
	ctx := context.Background()

	require.NoError(t, s.Select(ctx, 1, "size", "a"))

	s.Cancel()

	_, ok := s.Draft(1)
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, store.saved[1].ConfigData["size"].Selections)
}
