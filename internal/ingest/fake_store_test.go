package ingest

import (
	"context"
	"errors"
	"slices"

	"github.com/timmy/carmate/internal/domain"
)

var errInjected = errors.New("injected failure")

// memStore is an in-memory Datastore. Transactions stage writes and merge
// them into the parent on success.
type memStore struct {
	parent    *memStore
	models    []domain.CarModel
	cars      []domain.Car
	customers []domain.Customer
	nextID    *uint

	shared *memCounters
}

type memCounters struct {
	findCalls   int
	upsertCalls int
	createCalls int
	// failCreateAt makes the n-th CreateCars/CreateCustomers call fail (1-based).
	failCreateAt int
	failFind     error
	failExisting error
}

func newMemStore() *memStore {
	var id uint
	return &memStore{nextID: &id, shared: &memCounters{}}
}

func (s *memStore) allModels() []domain.CarModel {
	if s.parent == nil {
		return s.models
	}
	return slices.Concat(s.parent.allModels(), s.models)
}

func (s *memStore) allCars() []domain.Car {
	if s.parent == nil {
		return s.cars
	}
	return slices.Concat(s.parent.allCars(), s.cars)
}

func (s *memStore) allCustomers() []domain.Customer {
	if s.parent == nil {
		return s.customers
	}
	return slices.Concat(s.parent.allCustomers(), s.customers)
}

func (s *memStore) FindCarModel(_ context.Context, tenantID uint, manufacturer, model string) (*domain.CarModel, bool, error) {
	s.shared.findCalls++
	if s.shared.failFind != nil {
		return nil, false, s.shared.failFind
	}
	for _, m := range s.allModels() {
		if m.CompanyID == tenantID && m.Manufacturer == manufacturer && m.Model == model {
			m := m
			return &m, true, nil
		}
	}
	return nil, false, nil
}

func (s *memStore) UpsertCarModel(_ context.Context, model *domain.CarModel) error {
	s.shared.upsertCalls++
	*s.nextID++
	model.ID = *s.nextID
	s.models = append(s.models, *model)
	return nil
}

func (s *memStore) ExistingCarNumbers(_ context.Context, tenantID uint, carNumbers []string) ([]string, error) {
	if s.shared.failExisting != nil {
		return nil, s.shared.failExisting
	}
	want := make(map[string]bool, len(carNumbers))
	for _, n := range carNumbers {
		want[n] = true
	}
	var out []string
	for _, c := range s.allCars() {
		if c.CompanyID == tenantID && want[c.CarNumber] {
			out = append(out, c.CarNumber)
		}
	}
	return out, nil
}

func (s *memStore) ExistingPhoneNumbers(_ context.Context, tenantID uint, phoneNumbers []string) ([]string, error) {
	want := make(map[string]bool, len(phoneNumbers))
	for _, n := range phoneNumbers {
		want[n] = true
	}
	var out []string
	for _, c := range s.allCustomers() {
		if c.CompanyID == tenantID && want[c.PhoneNumber] {
			out = append(out, c.PhoneNumber)
		}
	}
	return out, nil
}

func (s *memStore) CreateCars(_ context.Context, cars []domain.Car) error {
	s.shared.createCalls++
	if s.shared.failCreateAt == s.shared.createCalls {
		return errInjected
	}
	s.cars = append(s.cars, cars...)
	return nil
}

func (s *memStore) CreateCustomers(_ context.Context, customers []domain.Customer) error {
	s.shared.createCalls++
	if s.shared.failCreateAt == s.shared.createCalls {
		return errInjected
	}
	s.customers = append(s.customers, customers...)
	return nil
}

func (s *memStore) Transaction(_ context.Context, fn func(tx Datastore) error) error {
	tx := &memStore{parent: s, nextID: s.nextID, shared: s.shared}
	if err := fn(tx); err != nil {
		return err
	}
	s.models = append(s.models, tx.models...)
	s.cars = append(s.cars, tx.cars...)
	s.customers = append(s.customers, tx.customers...)
	return nil
}
