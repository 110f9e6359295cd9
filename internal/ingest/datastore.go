package ingest

import (
	"context"

	"github.com/timmy/carmate/internal/domain"
)

// Datastore is the persistence the pipeline needs. All lookups are scoped
// to a tenant.
type Datastore interface {
	// FindCarModel looks up a model by its natural key. found is false when
	// no such model exists.
	FindCarModel(ctx context.Context, tenantID uint, manufacturer, model string) (m *domain.CarModel, found bool, err error)
	// UpsertCarModel inserts model, or adopts the existing row with the same
	// natural key, and sets model.ID.
	UpsertCarModel(ctx context.Context, model *domain.CarModel) error

	// ExistingCarNumbers returns the subset of carNumbers already stored.
	ExistingCarNumbers(ctx context.Context, tenantID uint, carNumbers []string) ([]string, error)
	// ExistingPhoneNumbers returns the subset of phoneNumbers already stored.
	ExistingPhoneNumbers(ctx context.Context, tenantID uint, phoneNumbers []string) ([]string, error)

	CreateCars(ctx context.Context, cars []domain.Car) error
	CreateCustomers(ctx context.Context, customers []domain.Customer) error

	// Transaction runs fn against a transactional view of the store. A
	// non-nil return rolls back everything fn wrote. Nested calls nest.
	Transaction(ctx context.Context, fn func(tx Datastore) error) error
}
