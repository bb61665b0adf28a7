package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/repository"
)

type fakeStandConfigRepository struct {
	nextID  uint
	configs map[uint]domain.StandConfig
}

func newFakeStandConfigRepository() *fakeStandConfigRepository {
	return &fakeStandConfigRepository{nextID: 1, configs: map[uint]domain.StandConfig{}}
}

func (f *fakeStandConfigRepository) Create(_ context.Context, config domain.StandConfig) (domain.StandConfig, error) {
	config.ID = f.nextID
	f.nextID++
	f.configs[config.ID] = config

	return config, nil
}

func (f *fakeStandConfigRepository) Update(_ context.Context, config domain.StandConfig) (domain.StandConfig, error) {
	if _, ok := f.configs[config.ID]; !ok {
		return domain.StandConfig{}, repository.ErrStandConfigNotFound
	}
	f.configs[config.ID] = config

	return config, nil
}

func (f *fakeStandConfigRepository) FindByID(_ context.Context, id uint) (domain.StandConfig, error) {
	config, ok := f.configs[id]
	if !ok {
		return domain.StandConfig{}, repository.ErrStandConfigNotFound
	}

	return config, nil
}

func (f *fakeStandConfigRepository) FindByUserAndOption(_ context.Context, userID, standOptionID uint) (domain.StandConfig, error) {
	for _, config := range f.configs {
		if config.UserID == userID && config.StandOptionID == standOptionID {
			return config, nil
		}
	}

	return domain.StandConfig{}, repository.ErrStandConfigNotFound
}

func (f *fakeStandConfigRepository) FindByUserAndEvent(_ context.Context, userID, eventID uint) ([]domain.StandConfig, error) {
	var result []domain.StandConfig
	for _, config := range f.configs {
		if config.UserID == userID && config.EventID == eventID {
			result = append(result, config)
		}
	}

	return result, nil
}

func (f *fakeStandConfigRepository) FindByEvent(_ context.Context, eventID uint) ([]domain.StandConfig, error) {
	var result []domain.StandConfig
	for _, config := range f.configs {
		if config.EventID == eventID {
			result = append(result, config)
		}
	}

	return result, nil
}

func testSchema() domain.StandOption {
	return domain.StandOption{
		ID:      7,
		EventID: 3,
		Title:   "Booth Package",
		Items: []domain.StandItem{
			{
				ID:            "size",
				Label:         "Booth Size",
				Type:          domain.ItemTypeSelect,
				Required:      true,
				MaxSelections: 1,
				Options: []domain.StandOptionItem{
					{ID: "small", Label: "Small", Price: 100},
					{ID: "large", Label: "Large", Price: 250},
				},
			},
		},
	}
}

func TestStandConfigService_GetOrCreateDraft(t *testing.T) {
	svc := NewStandConfigService(newFakeStandConfigRepository())
	schema := testSchema()

	first, err := svc.GetOrCreateDraft(context.Background(), 10, schema)
	require.NoError(t, err)
	assert.Equal(t, schema.EventID, first.EventID)
	assert.False(t, first.IsSubmitted)

	second, err := svc.GetOrCreateDraft(context.Background(), 10, schema)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "reopening resumes the same draft")
}

func TestStandConfigService_UpdateItemReprices(t *testing.T) {
	svc := NewStandConfigService(newFakeStandConfigRepository())
	schema := testSchema()

	draft, err := svc.GetOrCreateDraft(context.Background(), 10, schema)
	require.NoError(t, err)

	updated, err := svc.UpdateItem(context.Background(), draft, schema, "size", domain.FieldResponse{
		Selections: []string{"large"},
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.TotalPrice)
	assert.Equal(t, map[string]float64{"Booth Size": 250}, updated.PriceBreakdown)
}

func TestStandConfigService_SubmitAndPay(t *testing.T) {
	svc := NewStandConfigService(newFakeStandConfigRepository())
	schema := testSchema()

	draft, err := svc.GetOrCreateDraft(context.Background(), 10, schema)
	require.NoError(t, err)

	draft, err = svc.UpdateItem(context.Background(), draft, schema, "size", domain.FieldResponse{
		Selections: []string{"small"},
	})
	require.NoError(t, err)

	submitted, err := svc.Submit(context.Background(), draft, schema)
	require.NoError(t, err)
	assert.True(t, submitted.IsSubmitted)
	assert.Equal(t, domain.PaymentPending, submitted.PaymentStatus)
	assert.Equal(t, 100.0, submitted.TotalPrice)

	paid, err := svc.SetPaymentStatus(context.Background(), submitted.ID, domain.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, paid.PaymentStatus)
}

func TestStandConfigService_SubmitIncomplete(t *testing.T) {
	svc := NewStandConfigService(newFakeStandConfigRepository())
	schema := testSchema()

	draft, err := svc.GetOrCreateDraft(context.Background(), 10, schema)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), draft, schema)

	var incomplete *domain.IncompleteConfigurationError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"size"}, incomplete.MissingItemIDs)
}

func TestStandConfigService_Reopen(t *testing.T) {
	svc := NewStandConfigService(newFakeStandConfigRepository())
	schema := testSchema()

	draft, err := svc.GetOrCreateDraft(context.Background(), 10, schema)
	require.NoError(t, err)

	_, err = svc.Reopen(context.Background(), draft.ID)
	assert.ErrorIs(t, err, domain.ErrConfigNotSubmitted)

	draft, err = svc.UpdateItem(context.Background(), draft, schema, "size", domain.FieldResponse{
		Selections: []string{"small"},
	})
	require.NoError(t, err)

	submitted, err := svc.Submit(context.Background(), draft, schema)
	require.NoError(t, err)

	reopened, err := svc.Reopen(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsSubmitted)
	assert.Equal(t, domain.PaymentPending, reopened.PaymentStatus)

	// The configuration is editable again.
	_, err = svc.UpdateItem(context.Background(), reopened, schema, "size", domain.FieldResponse{
		Selections: []string{"large"},
	})
	require.NoError(t, err)
}
