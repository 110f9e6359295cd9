package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/carmate/internal/api/middleware"
	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/ingest"
	"github.com/timmy/carmate/internal/logger"
	"github.com/timmy/carmate/internal/service"
)

const (
	msgSuccess      = "성공적으로 등록되었습니다"
	msgBadRequest   = "잘못된 요청입니다"
	msgServerError  = "서버 오류가 발생했습니다"
	msgUnauthorized = "로그인이 필요합니다"
	msgNotFound     = "요청한 업로드를 찾을 수 없습니다"
	formFieldFile   = "file"
)

// UploadResponse is the body of every upload response. Count is set on success only.
type UploadResponse struct {
	Message  string `json:"message"`
	UploadID string `json:"upload_id,omitempty"`
	Count    *int   `json:"count,omitempty"`
}

// UploadHandler handles the bulk CSV upload endpoints.
type UploadHandler struct {
	uploadService *service.UploadService
	maxFileSize   int64
}

// NewUploadHandler creates a new upload handler.
// Parameters:
//   - uploadService: service running the ingestion pipeline.
//   - maxFileSize: largest accepted file in bytes, 0 for no limit.
// Returns:
//   - *UploadHandler: initialized handler.
func NewUploadHandler(uploadService *service.UploadService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxFileSize:   maxFileSize,
	}
}

// UploadCars handles POST /api/v1/cars/upload.
func (h *UploadHandler) UploadCars(c *gin.Context) {
	h.upload(c, domain.EntityKindCar)
}

// UploadCustomers handles POST /api/v1/customers/upload.
func (h *UploadHandler) UploadCustomers(c *gin.Context) {
	h.upload(c, domain.EntityKindCustomer)
}

func (h *UploadHandler) upload(c *gin.Context, kind domain.EntityKind) {
	ctx := logger.SetEntityKind(c.Request.Context(), string(kind))

	fileName, data, err := h.readFile(c)
	if err != nil {
		logger.CtxWarn(ctx, "Rejected upload file: %v", err)
		c.JSON(http.StatusBadRequest, UploadResponse{Message: msgBadRequest})
		return
	}

	upload, res, err := h.uploadService.Upload(ctx, &service.UploadRequest{
		CompanyID: middleware.CompanyID(c),
		Kind:      kind,
		FileName:  fileName,
		Data:      data,
	})

	resp := UploadResponse{}
	if upload != nil {
		resp.UploadID = upload.ID
	}
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.CtxError(ctx, "Upload failed: %v", err)
		} else {
			logger.CtxWarn(ctx, "Upload rejected: %v", err)
		}
		resp.Message = messageFor(status)
		c.JSON(status, resp)
		return
	}

	count := res.Persisted
	resp.Message = msgSuccess
	resp.Count = &count
	c.JSON(http.StatusOK, resp)
}

// readFile reads the multipart "file" field, stopping one byte past the limit
// so the service can reject oversized files.
func (h *UploadHandler) readFile(c *gin.Context) (string, []byte, error) {
	header, err := c.FormFile(formFieldFile)
	if err != nil {
		return "", nil, fmt.Errorf("missing %q form field: %w", formFieldFile, err)
	}

	f, err := header.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if h.maxFileSize > 0 {
		r = io.LimitReader(f, h.maxFileSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return header.Filename, data, nil
}

// statusFor maps an upload error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownCompany):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, ingest.ErrUnknownKind):
		return http.StatusBadRequest
	}

	switch ingest.KindOf(err) {
	case ingest.ErrStructuralParse, ingest.ErrRowValidation:
		return http.StatusBadRequest
	case ingest.ErrDuplicateKey:
		// the key lookup itself can fail; only real collisions are the client's fault
		if errors.Is(err, ingest.ErrDuplicateInUpload) || errors.Is(err, ingest.ErrDuplicateExisting) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return msgBadRequest
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusNotFound:
		return msgNotFound
	default:
		return msgServerError
	}
}
