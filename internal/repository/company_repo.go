package repository

import (
	"context"

	"github.com/timmy/carmate/internal/domain"
	"gorm.io/gorm"
)

// CompanyRepository handles company (tenant) records.
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a new company.
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID retrieves a company by its ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByCode retrieves a company by its company code.
func (r *CompanyRepository) GetByCode(ctx context.Context, code string) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.WithContext(ctx).First(&company, "company_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// ExistsByID checks if a company with the given ID exists.
func (r *CompanyRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Company{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
