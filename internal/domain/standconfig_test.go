package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() StandOption {
	return StandOption{
		ID:      1,
		EventID: 10,
		Title:   "Corner Stand",
		Items: []StandItem{
			{ID: "name", Label: "Stand Name", Type: ItemTypeText, Required: true},
			{
				ID:            "size",
				Label:         "Size",
				Type:          ItemTypeSelect,
				Required:      true,
				MaxSelections: 1,
				Options: []StandOptionItem{
					{ID: "a", Label: "Basic", Price: 100},
					{ID: "b", Label: "Premium", Price: 250},
				},
			},
			{
				ID:            "addons",
				Label:         "Add-ons",
				Type:          ItemTypeImage,
				MaxSelections: 2,
				Options: []StandOptionItem{
					{ID: "x", Label: "Banner", Price: 30},
					{ID: "y", Label: "Lighting", Price: 20},
					{ID: "z", Label: "Carpet", Price: 10},
				},
			},
		},
	}
}

func TestStandOption_Validate(t *testing.T) {
	schema := testSchema()
	assert.NoError(t, schema.Validate())

	dup := testSchema()
	dup.Items[1].ID = "name"
	assert.Error(t, dup.Validate())

	badBound := testSchema()
	badBound.Items[1].MaxSelections = 0
	assert.Error(t, badBound.Validate())

	negPrice := testSchema()
	negPrice.Items[1].Options[0].Price = -5
	assert.Error(t, negPrice.Validate())
}

func TestApplyUpdate(t *testing.T) {
	schema := testSchema()
	cfg := StandConfig{UserID: 7, StandOptionID: schema.ID}

	err := cfg.ApplyUpdate(schema, "name", FieldResponse{Text: "ACME"})
	require.NoError(t, err)
	assert.Equal(t, "ACME", cfg.ConfigData["name"].Text)
	assert.Equal(t, ItemTypeText, cfg.ConfigData["name"].Type)

	err = cfg.ApplyUpdate(schema, "no-such-item", FieldResponse{Text: "x"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "no-such-item", vErr.ItemID)
}

func TestApplyUpdate_MaxSelections(t *testing.T) {
	schema := testSchema()
	cfg := StandConfig{}

	err := cfg.ApplyUpdate(schema, "addons", FieldResponse{Selections: []string{"x", "y", "z"}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "addons", vErr.ItemID)

	// The failed update must not mutate stored state.
	assert.Empty(t, cfg.ConfigData["addons"].Selections)
}

func TestApplyUpdate_UnknownOption(t *testing.T) {
	schema := testSchema()
	cfg := StandConfig{}

	err := cfg.ApplyUpdate(schema, "size", FieldResponse{Selections: []string{"gold"}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSubmit_RequiredGate(t *testing.T) {
	schema := testSchema()
	cfg := StandConfig{}

	require.NoError(t, cfg.ApplyUpdate(schema, "size", FieldResponse{Selections: []string{"b"}}))

	err := cfg.Submit(schema, 250, map[string]float64{"Size": 250})
	var incomplete *IncompleteConfigurationError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"name"}, incomplete.MissingItemIDs)
	assert.False(t, cfg.IsSubmitted)

	require.NoError(t, cfg.ApplyUpdate(schema, "name", FieldResponse{Text: "ACME"}))
	require.NoError(t, cfg.Submit(schema, 250, map[string]float64{"Size": 250}))

	assert.True(t, cfg.IsSubmitted)
	assert.Equal(t, PaymentPending, cfg.PaymentStatus)
	assert.Equal(t, 250.0, cfg.TotalPrice)
	assert.Equal(t, map[string]float64{"Size": 250}, cfg.PriceBreakdown)
}

func TestSubmit_FreezesDraft(t *testing.T) {
	schema := testSchema()
	cfg := StandConfig{}

	require.NoError(t, cfg.ApplyUpdate(schema, "name", FieldResponse{Text: "ACME"}))
	require.NoError(t, cfg.ApplyUpdate(schema, "size", FieldResponse{Selections: []string{"a"}}))
	require.NoError(t, cfg.Submit(schema, 100, map[string]float64{"Size": 100}))

	err := cfg.ApplyUpdate(schema, "name", FieldResponse{Text: "Other"})
	assert.ErrorIs(t, err, ErrConfigNotDraft)

	err = cfg.Submit(schema, 100, nil)
	assert.ErrorIs(t, err, ErrConfigNotDraft)
}

func TestSetPaymentStatus(t *testing.T) {
	cfg := StandConfig{IsSubmitted: true, PaymentStatus: PaymentPending}

	require.NoError(t, cfg.SetPaymentStatus(PaymentProcessing))
	require.NoError(t, cfg.SetPaymentStatus(PaymentCompleted))

	// Completed is terminal for this submission cycle.
	err := cfg.SetPaymentStatus(PaymentPending)
	var tErr *InvalidTransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, PaymentCompleted, tErr.From)
	assert.Equal(t, PaymentPending, tErr.To)

	// Setting the current status again is a no-op.
	assert.NoError(t, cfg.SetPaymentStatus(PaymentCompleted))
}

func TestSetPaymentStatus_RequiresSubmission(t *testing.T) {
	cfg := StandConfig{}
	assert.ErrorIs(t, cfg.SetPaymentStatus(PaymentProcessing), ErrConfigNotSubmitted)
}

func TestReopen(t *testing.T) {
	cfg := StandConfig{IsSubmitted: true, PaymentStatus: PaymentCancelled}

	cfg.Reopen()

	assert.False(t, cfg.IsSubmitted)
	assert.Equal(t, PaymentPending, cfg.PaymentStatus)
}

func TestDecodeConfigData_LegacyShapes(t *testing.T) {
	raw := map[string]any{
		"name":   "ACME",
		"addons": []any{"x", "y"},
		"size": map[string]any{
			"type":       "select",
			"selections": []any{"b"},
		},
		MetaKey: map[string]any{"totalPrice": 250.0},
	}

	data, meta := DecodeConfigData(raw)

	assert.Equal(t, "ACME", data["name"].Text)
	assert.Equal(t, []string{"x", "y"}, data["addons"].Selections)
	assert.Equal(t, []string{"b"}, data["size"].Selections)
	assert.Equal(t, ItemTypeSelect, data["size"].Type)

	_, reserved := data[MetaKey]
	assert.False(t, reserved)

	require.NotNil(t, meta)
	require.NotNil(t, meta.TotalPrice)
	assert.Equal(t, 250.0, *meta.TotalPrice)
}

func TestEffectiveTotal(t *testing.T) {
	legacy := 99.0

	withStored := StandConfig{TotalPrice: 250, LegacyTotal: &legacy}
	assert.Equal(t, 250.0, withStored.EffectiveTotal())

	withoutStored := StandConfig{LegacyTotal: &legacy}
	assert.Equal(t, 99.0, withoutStored.EffectiveTotal())
}
