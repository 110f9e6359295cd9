package repository

import (
	"context"

	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/ingest"
	"gorm.io/gorm"
)

// Store adapts the gorm repositories to ingest.Datastore.
type Store struct {
	db        *gorm.DB
	cars      *CarRepository
	models    *CarModelRepository
	customers *CustomerRepository
}

var _ ingest.Datastore = (*Store)(nil)

// NewStore creates a Store on db. db may be a transaction handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		cars:      NewCarRepository(db),
		models:    NewCarModelRepository(db),
		customers: NewCustomerRepository(db),
	}
}

func (s *Store) FindCarModel(ctx context.Context, tenantID uint, manufacturer, model string) (*domain.CarModel, bool, error) {
	m, err := s.models.GetByNaturalKey(ctx, tenantID, manufacturer, model)
	if isNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func (s *Store) UpsertCarModel(ctx context.Context, model *domain.CarModel) error {
	return s.models.Upsert(ctx, model)
}

func (s *Store) ExistingCarNumbers(ctx context.Context, tenantID uint, carNumbers []string) ([]string, error) {
	return s.cars.ExistingCarNumbers(ctx, tenantID, carNumbers)
}

func (s *Store) ExistingPhoneNumbers(ctx context.Context, tenantID uint, phoneNumbers []string) ([]string, error) {
	return s.customers.ExistingPhoneNumbers(ctx, tenantID, phoneNumbers)
}

func (s *Store) CreateCars(ctx context.Context, cars []domain.Car) error {
	return s.cars.CreateBatch(ctx, cars)
}

func (s *Store) CreateCustomers(ctx context.Context, customers []domain.Customer) error {
	return s.customers.CreateBatch(ctx, customers)
}

// Transaction runs fn in a database transaction; nested calls use savepoints.
func (s *Store) Transaction(ctx context.Context, fn func(tx ingest.Datastore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
