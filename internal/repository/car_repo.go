package repository

import (
	"context"

	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/ingest"
	"gorm.io/gorm"
)

// inChunk bounds the number of bind parameters in IN (...) lookups.
const inChunk = 500

// CarRepository handles car inventory records.
type CarRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new CarRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *CarRepository: repository instance bound to db.
func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

// CreateBatch inserts cars in a single statement.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - cars: records to insert; IDs are set on return.
// Returns:
//   - error: non-nil if the insert fails.
func (r *CarRepository) CreateBatch(ctx context.Context, cars []domain.Car) error {
	if len(cars) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cars).Error
}

// ExistingCarNumbers returns which of carNumbers a company already has.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - companyID: owning company.
//   - carNumbers: plates to look up.
// Returns:
//   - []string: plates already stored.
//   - error: non-nil if a lookup fails.
func (r *CarRepository) ExistingCarNumbers(ctx context.Context, companyID uint, carNumbers []string) ([]string, error) {
	var found []string
	for _, chunk := range ingest.Chunk(carNumbers, inChunk) {
		var part []string
		err := r.db.WithContext(ctx).Model(&domain.Car{}).
			Where("company_id = ? AND car_number IN ?", companyID, chunk).
			Pluck("car_number", &part).Error
		if err != nil {
			return nil, err
		}
		found = append(found, part...)
	}
	return found, nil
}

// CountByCompany counts a company's cars.
func (r *CarRepository) CountByCompany(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Car{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}
