package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/ingest"
	"github.com/timmy/carmate/internal/logger"
	"github.com/timmy/carmate/internal/metrics"
	"github.com/timmy/carmate/internal/repository"
	"github.com/timmy/carmate/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrUnknownCompany = errors.New("unknown company")
	ErrEmptyFile      = errors.New("uploaded file is empty")
	ErrFileTooLarge   = errors.New("uploaded file is too large")
	ErrUploadNotFound = errors.New("upload not found")
	ErrNotArchived    = errors.New("upload file was not archived")
)

// UploadService runs bulk uploads through the ingestion pipeline and keeps
// a history record for each one.
type UploadService struct {
	pipeline  *ingest.Pipeline
	uploads   *repository.UploadRepository
	companies *repository.CompanyRepository
	archive   storage.ObjectStorage
	logger    *logger.Logger
	cfg       UploadConfig
}

// UploadConfig holds configuration for the upload service
type UploadConfig struct {
	MaxFileSize   int64
	ArchivePrefix string
}

// NewUploadService creates a new upload service. archive may be nil, in
// which case raw files are not kept.
func NewUploadService(
	pipeline *ingest.Pipeline,
	uploads *repository.UploadRepository,
	companies *repository.CompanyRepository,
	archive storage.ObjectStorage,
	log *logger.Logger,
	cfg *UploadConfig,
) *UploadService {
	if log == nil {
		log = logger.GetDefault()
	}
	s := &UploadService{
		pipeline:  pipeline,
		uploads:   uploads,
		companies: companies,
		archive:   archive,
		logger:    log,
	}
	if cfg != nil {
		s.cfg = *cfg
	}
	return s
}

// log returns the context logger when one was attached, otherwise the service logger
func (s *UploadService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != logger.GetDefault() {
		return l
	}
	return s.logger
}

// UploadRequest is one CSV file submitted by a company.
type UploadRequest struct {
	CompanyID uint
	Kind      domain.EntityKind
	FileName  string
	Data      []byte
}

// Upload ingests req and records the outcome. The returned Upload is non-nil
// whenever a history record was created, including when the pipeline failed;
// the error then wraps one of the ingest.Err* kinds.
func (s *UploadService) Upload(ctx context.Context, req *UploadRequest) (*domain.Upload, *ingest.Result, error) {
	if !req.Kind.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ingest.ErrUnknownKind, req.Kind)
	}
	if len(req.Data) == 0 {
		return nil, nil, ErrEmptyFile
	}
	if s.cfg.MaxFileSize > 0 && int64(len(req.Data)) > s.cfg.MaxFileSize {
		return nil, nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(req.Data), s.cfg.MaxFileSize)
	}

	ok, err := s.companies.ExistsByID(ctx, req.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up company: %w", err)
	}
	if !ok {
		return nil, nil, ErrUnknownCompany
	}

	now := time.Now()
	upload := &domain.Upload{
		ID:        uuid.New().String(),
		CompanyID: req.CompanyID,
		Kind:      req.Kind,
		FileName:  req.FileName,
		FileSize:  int64(len(req.Data)),
		Status:    domain.UploadStatusProcessing,
		Stage:     string(ingest.StageReceived),
		RequestID: logger.GetRequestID(ctx),
		StartedAt: &now,
	}
	if err := s.uploads.Create(ctx, upload); err != nil {
		return nil, nil, fmt.Errorf("failed to create upload record: %w", err)
	}

	ctx = s.log(ctx).WithContext(ctx)
	ctx = logger.SetUploadID(ctx, upload.ID)
	ctx = logger.SetTenantID(ctx, req.CompanyID)
	ctx = logger.SetEntityKind(ctx, string(req.Kind))

	s.archiveFile(ctx, upload, req.Data)

	metrics.UploadsInFlight.Inc()
	res, runErr := s.pipeline.Ingest(ctx, ingest.Request{
		TenantID: req.CompanyID,
		Kind:     req.Kind,
		Data:     req.Data,
	})
	metrics.UploadsInFlight.Dec()

	s.finish(ctx, upload, res, runErr)
	return upload, res, runErr
}

// archiveFile keeps the raw CSV. Failure is logged and does not stop the upload.
func (s *UploadService) archiveFile(ctx context.Context, upload *domain.Upload, data []byte) {
	if s.archive == nil {
		return
	}
	key := storage.ArchiveKey(s.cfg.ArchivePrefix, upload.CompanyID, string(upload.Kind), upload.ID)
	if err := s.archive.Put(ctx, key, data, "text/csv"); err != nil {
		metrics.ArchiveFailuresTotal.Inc()
		s.log(ctx).WithError(err).Warn("Failed to archive upload file")
		return
	}
	upload.StorageKey = key
}

func (s *UploadService) finish(ctx context.Context, upload *domain.Upload, res *ingest.Result, runErr error) {
	completed := time.Now()
	upload.CompletedAt = &completed
	upload.TotalRows = res.Rows
	upload.PersistedRows = res.Persisted
	upload.CommittedBatches = res.CommittedBatches

	kind := string(upload.Kind)
	if runErr != nil {
		upload.Status = domain.UploadStatusFailed
		upload.Stage = string(res.FailedAt)
		upload.ErrorKind = ingest.KindName(runErr)
		upload.ErrorLog = runErr.Error()
		metrics.UploadFailuresTotal.WithLabelValues(kind, upload.ErrorKind).Inc()
	} else {
		upload.Status = domain.UploadStatusSucceeded
		upload.Stage = string(res.Stage)
	}

	metrics.UploadsTotal.WithLabelValues(kind, string(upload.Status)).Inc()
	metrics.UploadDuration.WithLabelValues(kind).Observe(res.Duration().Seconds())
	metrics.RowsPersistedTotal.WithLabelValues(kind).Add(float64(res.Persisted))
	metrics.BatchesCommittedTotal.WithLabelValues(kind).Add(float64(res.CommittedBatches))

	// the record must land even if the request was cancelled mid-run
	if err := s.uploads.Update(context.WithoutCancel(ctx), upload); err != nil {
		s.log(ctx).WithError(err).Error("Failed to update upload record")
	}
}

// Get returns one of a company's uploads.
func (s *UploadService) Get(ctx context.Context, companyID uint, id string) (*domain.Upload, error) {
	upload, err := s.uploads.GetByID(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return upload, nil
}

// List returns a page of a company's uploads and the total count.
func (s *UploadService) List(ctx context.Context, companyID uint, filter repository.UploadFilter) ([]domain.Upload, int64, error) {
	uploads, total, err := s.uploads.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, total, nil
}

// RawFile returns the archived CSV of an upload.
func (s *UploadService) RawFile(ctx context.Context, companyID uint, id string) (*domain.Upload, []byte, error) {
	upload, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if s.archive == nil || upload.StorageKey == "" {
		return upload, nil, ErrNotArchived
	}
	ok, err := s.archive.Exists(ctx, upload.StorageKey)
	if err != nil {
		return upload, nil, fmt.Errorf("failed to check archived file: %w", err)
	}
	if !ok {
		return upload, nil, ErrNotArchived
	}
	data, err := s.archive.Get(ctx, upload.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return upload, nil, ErrNotArchived
	}
	if err != nil {
		return upload, nil, fmt.Errorf("failed to read archived file: %w", err)
	}
	return upload, data, nil
}

// FileURL returns where the archived CSV of upload can be fetched from the
// object store, "" when it was not archived.
func (s *UploadService) FileURL(upload *domain.Upload) string {
	if s.archive == nil || upload == nil || upload.StorageKey == "" {
		return ""
	}
	return s.archive.GetURL(upload.StorageKey)
}
