package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salasintercc/expo-admin-api/internal/domain"
)

func boothSchema() domain.StandOption {
	return domain.StandOption{
		ID:      1,
		EventID: 10,
		Title:   "Booth Package",
		Items: []domain.StandItem{
			{
				ID:       "company-name",
				Label:    "Company Name",
				Type:     domain.ItemTypeText,
				Required: true,
			},
			{
				ID:    "logo",
				Label: "Logo",
				Type:  domain.ItemTypeUpload,
			},
			{
				ID:            "booth-size",
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
					{ID: "free-wifi", Label: "WiFi", Price: 0},
				},
			},
		},
	}
}

func TestCompute(t *testing.T) {
	schema := boothSchema()

	data := domain.ConfigData{
		"company-name": {Type: domain.ItemTypeText, Text: "ACME Corp"},
		"logo":         {Type: domain.ItemTypeUpload, Text: "https://cdn.example.com/logo.png"},
		"booth-size":   {Type: domain.ItemTypeSelect, Selections: []string{"b"}},
		"extras":       {Type: domain.ItemTypeSelect, Selections: []string{"screen", "fridge"}},
	}

	result := Compute(schema, data)

	assert.Equal(t, 370.0, result.Total)
	assert.Equal(t, map[string]float64{
		"Booth Size": 250,
		"Extras":     120,
	}, result.Breakdown)
	assert.Empty(t, result.Warnings)
}

func TestCompute_Deterministic(t *testing.T) {
	schema := boothSchema()
	data := domain.ConfigData{
		"booth-size": {Selections: []string{"a"}},
		"extras":     {Selections: []string{"screen"}},
	}

	first := Compute(schema, data)
	second := Compute(schema, data)

	assert.Equal(t, first, second)
}

func TestCompute_BreakdownReconciliation(t *testing.T) {
	schema := boothSchema()
	data := domain.ConfigData{
		"booth-size": {Selections: []string{"b"}},
		"extras":     {Selections: []string{"fridge", "free-wifi"}},
	}

	result := Compute(schema, data)

	sum := 0.0
	for _, v := range result.Breakdown {
		sum += v
	}
	assert.Equal(t, result.Total, sum)
}

func TestCompute_TextAndUploadContributeNothing(t *testing.T) {
	schema := boothSchema()
	data := domain.ConfigData{
		"company-name": {Text: "ACME Corp"},
		"logo":         {Text: "https://cdn.example.com/logo.png"},
	}

	result := Compute(schema, data)

	assert.Zero(t, result.Total)
	assert.Empty(t, result.Breakdown)
}

func TestCompute_StaleOptionID(t *testing.T) {
	schema := boothSchema()

	// "gold" was removed from the schema after the answer was stored.
	data := domain.ConfigData{
		"booth-size": {Selections: []string{"gold"}},
		"extras":     {Selections: []string{"screen"}},
	}

	result := Compute(schema, data)

	assert.Equal(t, 80.0, result.Total)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "booth-size", result.Warnings[0].ItemID)
	assert.Equal(t, "gold", result.Warnings[0].OptionID)
}

func TestCompute_LegacySingleChoiceString(t *testing.T) {
	schema := boothSchema()

	// Older records stored single-choice answers as a bare string.
	raw := map[string]any{
		"booth-size": "a",
	}
	data, _ := domain.DecodeConfigData(raw)

	result := Compute(schema, data)

	assert.Equal(t, 100.0, result.Total)
	assert.Equal(t, map[string]float64{"Booth Size": 100}, result.Breakdown)
}
