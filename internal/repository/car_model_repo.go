package repository

import (
	"context"
	"errors"

	"github.com/timmy/carmate/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CarModelRepository handles car model records.
type CarModelRepository struct {
	db *gorm.DB
}

// NewCarModelRepository creates a new CarModelRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *CarModelRepository: repository instance bound to db.
func NewCarModelRepository(db *gorm.DB) *CarModelRepository {
	return &CarModelRepository{db: db}
}

// GetByNaturalKey retrieves a model by company, manufacturer and model name.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - companyID: owning company.
//   - manufacturer: manufacturer name as written in uploads.
//   - model: model name as written in uploads.
// Returns:
//   - *domain.CarModel: model record if found.
//   - error: gorm.ErrRecordNotFound if absent, other non-nil on failure.
func (r *CarModelRepository) GetByNaturalKey(ctx context.Context, companyID uint, manufacturer, model string) (*domain.CarModel, error) {
	var m domain.CarModel
	err := r.db.WithContext(ctx).
		First(&m, "company_id = ? AND manufacturer = ? AND model = ?", companyID, manufacturer, model).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert inserts a model, or on a natural key conflict leaves the stored
// row untouched and loads its ID into model.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - model: model to create; ID is set on return.
// Returns:
//   - error: non-nil if the insert or reload fails.
func (r *CarModelRepository) Upsert(ctx context.Context, model *domain.CarModel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "manufacturer"}, {Name: "model"}},
		DoNothing: true,
	}).Create(model).Error
	if err != nil {
		return err
	}
	if model.ID != 0 {
		return nil
	}

	// DO NOTHING returns no row on conflict; read back the winner.
	stored, err := r.GetByNaturalKey(ctx, model.CompanyID, model.Manufacturer, model.Model)
	if err != nil {
		return err
	}
	*model = *stored
	return nil
}

// ListByCompany returns a company's models ordered by manufacturer and model.
func (r *CarModelRepository) ListByCompany(ctx context.Context, companyID uint) ([]domain.CarModel, error) {
	var models []domain.CarModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("manufacturer, model").
		Find(&models).Error
	return models, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
