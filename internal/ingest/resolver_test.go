package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/carmate/internal/domain"
)

func TestModelResolverCreatesOncePerKey(t *testing.T) {
	store := newMemStore()
	r := NewModelResolver(store, 1)
	ctx := context.Background()

	key := ModelKey{Manufacturer: "현대", Model: "쏘나타"}
	var first uint
	for i := 0; i < 100; i++ {
		id, err := r.Resolve(ctx, key, domain.CarTypeMidSize)
		require.NoError(t, err)
		if i == 0 {
			first = id
		}
		assert.Equal(t, first, id)
	}

	assert.Equal(t, 1, r.Created())
	assert.Equal(t, 1, store.shared.findCalls)
	assert.Equal(t, 1, store.shared.upsertCalls)
	require.Len(t, store.models, 1)
	assert.Equal(t, domain.CarTypeMidSize, store.models[0].Type)
}

func TestModelResolverReusesStoredModel(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	existing := &domain.CarModel{CompanyID: 1, Manufacturer: "기아", Model: "K5", Type: domain.CarTypeMidSize}
	require.NoError(t, store.UpsertCarModel(ctx, existing))

	r := NewModelResolver(store, 1)
	id, err := r.Resolve(ctx, ModelKey{Manufacturer: "기아", Model: "K5"}, domain.CarTypeSUV)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, id)
	assert.Equal(t, 0, r.Created())
}

func TestModelResolverScopesByTenant(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.UpsertCarModel(ctx, &domain.CarModel{CompanyID: 1, Manufacturer: "기아", Model: "K5"}))

	r := NewModelResolver(store, 2)
	_, err := r.Resolve(ctx, ModelKey{Manufacturer: "기아", Model: "K5"}, domain.CarTypeMidSize)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Created())
}

func TestModelResolverPropagatesStoreError(t *testing.T) {
	store := newMemStore()
	store.shared.failFind = errInjected

	r := NewModelResolver(store, 1)
	_, err := r.Resolve(context.Background(), ModelKey{Manufacturer: "a", Model: "b"}, domain.CarTypeSUV)
	assert.ErrorIs(t, err, errInjected)
}
