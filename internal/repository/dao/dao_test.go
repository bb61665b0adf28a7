package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=expo_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=postgres password=secret dbname=expo_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if openErr != nil {
			return openErr
		}
		testDB = db

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge container: %v", err)
	}

	os.Exit(code)
}

func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

func TestStandOptionDAO_RoundTrip(t *testing.T) {
	skipIfShort(t)

	d := NewStandOptionDAO(testDB)

	created, err := d.Insert(context.Background(), StandOption{
		EventID: 1,
		Title:   "Booth Package",
		Items: StandItems{
			{
				ID:       "size",
				Label:    "Booth Size",
				Type:     "select",
				Required: true,
				Options: []StandOptionItemDoc{
					{ID: "small", Label: "Small", Price: 100},
					{ID: "large", Label: "Large", Price: 250},
				},
			},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := d.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Booth Package", found.Title)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "size", found.Items[0].ID)
	require.Len(t, found.Items[0].Options, 2)
	assert.Equal(t, 250.0, found.Items[0].Options[1].Price)

	err = d.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = d.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrStandOptionNotFound)

	err = d.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrStandOptionNotFound)
}

func TestStandConfigDAO_RoundTrip(t *testing.T) {
	skipIfShort(t)

	d := NewStandConfigDAO(testDB)

	created, err := d.Insert(context.Background(), StandConfig{
		UserID:        10,
		StandOptionID: 77,
		EventID:       1,
		ConfigData: JSONMap{
			"size": map[string]any{"type": "select", "selections": []any{"large"}},
		},
		TotalPrice:     250,
		PriceBreakdown: FloatMap{"Booth Size": 250},
		PaymentStatus:  "pending",
	})
	require.NoError(t, err)

	found, err := d.FindByUserAndOption(context.Background(), 10, 77)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, 250.0, found.TotalPrice)
	assert.Equal(t, FloatMap{"Booth Size": 250}, found.PriceBreakdown)

	answer, ok := found.ConfigData["size"].(map[string]any)
	require.True(t, ok, "config data survives the jsonb round-trip")
	assert.Equal(t, "select", answer["type"])

	found.IsSubmitted = true
	found.PaymentStatus = "processing"
	updated, err := d.Update(context.Background(), found)
	require.NoError(t, err)
	assert.True(t, updated.IsSubmitted)

	byEvent, err := d.FindByEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, byEvent)

	_, err = d.FindByUserAndOption(context.Background(), 10, 9999)
	assert.ErrorIs(t, err, ErrStandConfigNotFound)
}

func TestGrantDAO_Upsert(t *testing.T) {
	skipIfShort(t)

	d := NewGrantDAO(testDB)

	first, err := d.Upsert(context.Background(), ExhibitorAccessGrant{
		EventID:              5,
		UserID:               10,
		IsEnabled:            true,
		IsStandConfigEnabled: true,
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := d.Upsert(context.Background(), ExhibitorAccessGrant{
		EventID:              5,
		UserID:               10,
		IsEnabled:            false,
		IsStandConfigEnabled: false,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert keeps a single row per (event, user)")
	assert.False(t, second.IsEnabled)

	_, err = d.FindByEventAndUser(context.Background(), 5, 9999)
	assert.ErrorIs(t, err, ErrGrantNotFound)
}

func TestUserDAO_UniqueEmail(t *testing.T) {
	skipIfShort(t)

	d := NewUserDAO(testDB)

	_, err := d.Insert(context.Background(), User{
		Email:    "unique@example.com",
		Password: "hashed",
		Name:     "First",
		Role:     "exhibitor",
	})
	require.NoError(t, err)

	_, err = d.Insert(context.Background(), User{
		Email:    "unique@example.com",
		Password: "hashed",
		Name:     "Second",
		Role:     "exhibitor",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}
