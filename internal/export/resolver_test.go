package export

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salasintercc/expo-admin-api/internal/domain"
)

type fakeSchemaSource struct {
	schemas map[uint]domain.StandOption
	calls   int
}

func (s *fakeSchemaSource) GetStandOption(_ context.Context, id uint) (domain.StandOption, error) {
	s.calls++
	schema, ok := s.schemas[id]
	if !ok {
		return domain.StandOption{}, errors.New("stand option not found")
	}

	return schema, nil
}

func boothSchema() domain.StandOption {
	return domain.StandOption{
		ID:      1,
		EventID: 10,
		Title:   "Booth Package",
		Items: []domain.StandItem{
			{ID: "company", Label: "Company Name", Type: domain.ItemTypeText},
			{
				ID:            "size",
				Label:         "Booth Size",
				Description:   "Floor space",
				Type:          domain.ItemTypeSelect,
				MaxSelections: 1,
				Options: []domain.StandOptionItem{
					{ID: "a", Label: "Basic", Price: 100},
					{ID: "b", Label: "Premium", Price: 250, Description: "Corner spot"},
				},
			},
		},
	}
}

func exhibitor() domain.User {
	return domain.User{ID: 7, Email: "jane@acme.test", Name: "Jane"}
}

func event() domain.Event {
	return domain.Event{ID: 10, Name: "Berlin Expo 2026"}
}

func newResolver(schemas ...domain.StandOption) (*Resolver, *fakeSchemaSource) {
	source := &fakeSchemaSource{schemas: map[uint]domain.StandOption{}}
	for _, s := range schemas {
		source.schemas[s.ID] = s
	}

	return NewResolver(NewSchemaCache(source)), source
}

func TestResolve_SingleConfig(t *testing.T) {
	r, _ := newResolver(boothSchema())

	cfg := domain.StandConfig{
		ID:            1,
		UserID:        7,
		EventID:       10,
		StandOptionID: 1,
		ConfigData: domain.ConfigData{
			"company": {Type: domain.ItemTypeText, Text: "ACME Corp"},
			"size":    {Type: domain.ItemTypeSelect, Selections: []string{"b"}},
		},
		TotalPrice:     250,
		PriceBreakdown: map[string]float64{"Booth Size": 250},
		IsSubmitted:    true,
		PaymentStatus:  domain.PaymentPending,
	}

	doc := r.Resolve(context.Background(), exhibitor(), event(), []domain.StandConfig{cfg})

	assert.Equal(t, "jane@acme.test", doc.Exhibitor.Email)
	assert.Equal(t, "Berlin Expo 2026", doc.Event.Name)
	assert.Nil(t, doc.GrandTotal)
	require.Len(t, doc.Configurations, 1)

	section := doc.Configurations[0]
	assert.Equal(t, "Booth Package", section.Type.Title)
	assert.True(t, section.IsSubmitted)
	assert.Equal(t, 250.0, section.TotalPrice)
	require.Len(t, section.Items, 2)

	assert.Equal(t, "Company Name", section.Items[0].Label)
	assert.Equal(t, "ACME Corp", section.Items[0].Response)

	selections, ok := section.Items[1].Response.([]ResolvedSelection)
	require.True(t, ok)
	require.Len(t, selections, 1)
	assert.Equal(t, "Premium", selections[0].Label)
	assert.Equal(t, 250.0, selections[0].Price)
	assert.Equal(t, "Corner spot", selections[0].Description)

	assert.Empty(t, doc.Warnings)
}

func TestResolve_BatchGrandTotal(t *testing.T) {
	furniture := domain.StandOption{
		ID:    2,
		Title: "Furniture",
		Items: []domain.StandItem{
			{
				ID:            "chairs",
				Label:         "Chairs",
				Type:          domain.ItemTypeSelect,
				MaxSelections: 1,
				Options:       []domain.StandOptionItem{{ID: "four", Label: "Four chairs", Price: 100}},
			},
		},
	}
	r, _ := newResolver(boothSchema(), furniture)

	configs := []domain.StandConfig{
		{
			StandOptionID: 1,
			ConfigData:    domain.ConfigData{"size": {Selections: []string{"b"}}},
			TotalPrice:    250,
			IsSubmitted:   true,
		},
		{
			StandOptionID: 2,
			ConfigData:    domain.ConfigData{"chairs": {Selections: []string{"four"}}},
			TotalPrice:    100,
			IsSubmitted:   true,
		},
	}

	doc := r.Resolve(context.Background(), exhibitor(), event(), configs)

	require.Len(t, doc.Configurations, 2)
	require.NotNil(t, doc.GrandTotal)
	assert.Equal(t, 350.0, *doc.GrandTotal)
}

func TestResolve_DeletedSchemaDegrades(t *testing.T) {
	r, source := newResolver() // no schemas at all

	cfg := domain.StandConfig{
		StandOptionID: 42,
		ConfigData:    domain.ConfigData{"size": {Selections: []string{"b"}}},
		TotalPrice:    250,
	}

	doc := r.Resolve(context.Background(), exhibitor(), event(), []domain.StandConfig{cfg, cfg})

	require.Len(t, doc.Configurations, 2)
	section := doc.Configurations[0]
	assert.Equal(t, "42", section.Type.Title)
	require.Len(t, section.Items, 1)
	assert.Equal(t, "size", section.Items[0].Label)

	require.NotEmpty(t, doc.Warnings)
	assert.Equal(t, uint(42), doc.Warnings[0].StandOptionID)

	// The cache remembers the miss within one export operation.
	assert.Equal(t, 1, source.calls)
}

func TestResolve_StaleOptionFallsBackToRawID(t *testing.T) {
	r, _ := newResolver(boothSchema())

	cfg := domain.StandConfig{
		StandOptionID: 1,
		ConfigData:    domain.ConfigData{"size": {Selections: []string{"gold"}}},
	}

	doc := r.Resolve(context.Background(), exhibitor(), event(), []domain.StandConfig{cfg})

	selections, ok := doc.Configurations[0].Items[0].Response.([]ResolvedSelection)
	require.True(t, ok)
	assert.Equal(t, "gold", selections[0].Label)
	assert.Zero(t, selections[0].Price)

	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, "gold", doc.Warnings[0].OptionID)
}

func TestResolve_LegacyMetaTotal(t *testing.T) {
	r, _ := newResolver(boothSchema())

	raw := map[string]any{
		"company":      "ACME Corp",
		domain.MetaKey: map[string]any{"totalPrice": 99.0},
	}
	data, meta := domain.DecodeConfigData(raw)
	require.NotNil(t, meta)

	cfg := domain.StandConfig{
		StandOptionID: 1,
		ConfigData:    data,
		LegacyTotal:   meta.TotalPrice,
	}

	doc := r.Resolve(context.Background(), exhibitor(), event(), []domain.StandConfig{cfg})

	section := doc.Configurations[0]
	assert.Equal(t, 99.0, section.TotalPrice)

	// The reserved key never shows up as a resolved item.
	for _, item := range section.Items {
		assert.NotEqual(t, domain.MetaKey, item.Label)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "acme-corp-config.pdf", Filename("ACME Corp", "pdf"))
	assert.Equal(t, "booth-package-config.json", Filename("Booth  Package", "json"))
	assert.Equal(t, "stand-config.pdf", Filename("  ", "pdf"))
}
