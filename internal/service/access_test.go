package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/repository"
)

type fakeGrantRepository struct {
	grants map[[2]uint]domain.ExhibitorAccessGrant
}

func newFakeGrantRepository() *fakeGrantRepository {
	return &fakeGrantRepository{grants: map[[2]uint]domain.ExhibitorAccessGrant{}}
}

func (f *fakeGrantRepository) Upsert(_ context.Context, grant domain.ExhibitorAccessGrant) (domain.ExhibitorAccessGrant, error) {
	key := [2]uint{grant.EventID, grant.UserID}
	if existing, ok := f.grants[key]; ok {
		grant.ID = existing.ID
	} else {
		grant.ID = uint(len(f.grants) + 1)
	}
	f.grants[key] = grant

	return grant, nil
}

func (f *fakeGrantRepository) FindByEventAndUser(_ context.Context, eventID, userID uint) (domain.ExhibitorAccessGrant, error) {
	grant, ok := f.grants[[2]uint{eventID, userID}]
	if !ok {
		return domain.ExhibitorAccessGrant{}, repository.ErrGrantNotFound
	}

	return grant, nil
}

func (f *fakeGrantRepository) FindByEvent(_ context.Context, eventID uint) ([]domain.ExhibitorAccessGrant, error) {
	var result []domain.ExhibitorAccessGrant
	for key, grant := range f.grants {
		if key[0] == eventID {
			result = append(result, grant)
		}
	}

	return result, nil
}

func TestAccessService_CanConfigure_NoGrant(t *testing.T) {
	svc := NewAccessService(newFakeGrantRepository())

	allowed, err := svc.CanConfigure(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.False(t, allowed, "missing grant must deny access")
}

func TestAccessService_GrantThenCanConfigure(t *testing.T) {
	svc := NewAccessService(newFakeGrantRepository())

	_, err := svc.Grant(context.Background(), 1, 10)
	require.NoError(t, err)

	allowed, err := svc.CanConfigure(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Same event, different user stays denied.
	allowed, err = svc.CanConfigure(context.Background(), 1, 11)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessService_RevokeKeepsRecord(t *testing.T) {
	repo := newFakeGrantRepository()
	svc := NewAccessService(repo)

	granted, err := svc.Grant(context.Background(), 1, 10)
	require.NoError(t, err)

	revoked, err := svc.Revoke(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, granted.ID, revoked.ID, "revoke updates the existing grant")
	assert.False(t, revoked.CanConfigure())

	allowed, err := svc.CanConfigure(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessService_GrantIsIdempotent(t *testing.T) {
	repo := newFakeGrantRepository()
	svc := NewAccessService(repo)

	first, err := svc.Grant(context.Background(), 1, 10)
	require.NoError(t, err)

	second, err := svc.Grant(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.grants, 1)
}
