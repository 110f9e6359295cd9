package ingest

import (
	"context"

	"github.com/timmy/carmate/internal/domain"
)

// ModelKey is the natural key of a car model within a tenant.
type ModelKey struct {
	Manufacturer string
	Model        string
}

func (k ModelKey) String() string {
	return k.Manufacturer + " " + k.Model
}

// ModelResolver maps (manufacturer, model) pairs to car model IDs,
// creating missing models on first sight. It caches per run, so each
// distinct pair costs at most one lookup and one insert.
type ModelResolver struct {
	store    Datastore
	tenantID uint
	cache    map[ModelKey]uint
	created  int
}

// NewModelResolver creates a resolver scoped to one tenant and one run.
func NewModelResolver(store Datastore, tenantID uint) *ModelResolver {
	return &ModelResolver{
		store:    store,
		tenantID: tenantID,
		cache:    make(map[ModelKey]uint),
	}
}

// Resolve returns the ID of the model for key. A model created here takes
// carType from the first row that mentions it.
func (r *ModelResolver) Resolve(ctx context.Context, key ModelKey, carType domain.CarType) (uint, error) {
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	m, found, err := r.store.FindCarModel(ctx, r.tenantID, key.Manufacturer, key.Model)
	if err != nil {
		return 0, err
	}
	if !found {
		m = &domain.CarModel{
			CompanyID:    r.tenantID,
			Manufacturer: key.Manufacturer,
			Model:        key.Model,
			Type:         carType,
		}
		if err := r.store.UpsertCarModel(ctx, m); err != nil {
			return 0, err
		}
		r.created++
	}

	r.cache[key] = m.ID
	return m.ID, nil
}

// Created returns how many models this resolver inserted.
func (r *ModelResolver) Created() int {
	return r.created
}
