package repository

import (
	"context"

	"github.com/timmy/carmate/internal/domain"
	"gorm.io/gorm"
)

// UploadRepository handles upload history records.
type UploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a new UploadRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *UploadRepository: repository instance bound to db.
func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create inserts a new upload record.
func (r *UploadRepository) Create(ctx context.Context, upload *domain.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

// Update saves all fields of an existing upload record.
func (r *UploadRepository) Update(ctx context.Context, upload *domain.Upload) error {
	return r.db.WithContext(ctx).Save(upload).Error
}

// GetByID retrieves an upload by ID within a company.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - companyID: owning company; uploads of other companies are not found.
//   - id: upload ID.
// Returns:
//   - *domain.Upload: upload record if found.
//   - error: gorm.ErrRecordNotFound if absent.
func (r *UploadRepository) GetByID(ctx context.Context, companyID uint, id string) (*domain.Upload, error) {
	var upload domain.Upload
	if err := r.db.WithContext(ctx).First(&upload, "company_id = ? AND id = ?", companyID, id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

// UploadFilter narrows List results. Zero values match everything.
type UploadFilter struct {
	Kind   domain.EntityKind
	Status domain.UploadStatus
	Limit  int
	Offset int
}

// List returns a company's uploads, newest first, plus the total matching count.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - companyID: owning company.
//   - filter: optional kind/status filter and paging.
// Returns:
//   - []domain.Upload: page of uploads.
//   - int64: total number of matching uploads.
//   - error: non-nil if the query fails.
func (r *UploadRepository) List(ctx context.Context, companyID uint, filter UploadFilter) ([]domain.Upload, int64, error) {
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&domain.Upload{}).Where("company_id = ?", companyID)
		if filter.Kind != "" {
			query = query.Where("kind = ?", filter.Kind)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	var uploads []domain.Upload
	err := scoped().Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&uploads).Error
	if err != nil {
		return nil, 0, err
	}
	return uploads, total, nil
}
