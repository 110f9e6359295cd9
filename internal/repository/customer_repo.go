package repository

import (
	"context"

	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/ingest"
	"gorm.io/gorm"
)

// CustomerRepository handles customer records.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CreateBatch inserts customers in a single statement.
func (r *CustomerRepository) CreateBatch(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&customers).Error
}

// ExistingPhoneNumbers returns which of phoneNumbers a company already has.
func (r *CustomerRepository) ExistingPhoneNumbers(ctx context.Context, companyID uint, phoneNumbers []string) ([]string, error) {
	var found []string
	for _, chunk := range ingest.Chunk(phoneNumbers, inChunk) {
		var part []string
		err := r.db.WithContext(ctx).Model(&domain.Customer{}).
			Where("company_id = ? AND phone_number IN ?", companyID, chunk).
			Pluck("phone_number", &part).Error
		if err != nil {
			return nil, err
		}
		found = append(found, part...)
	}
	return found, nil
}

// CountByCompany counts a company's customers.
func (r *CustomerRepository) CountByCompany(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}
