package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/timmy/carmate/internal/api/middleware"
	"github.com/timmy/carmate/internal/domain"
	"github.com/timmy/carmate/internal/logger"
	"github.com/timmy/carmate/internal/repository"
	"github.com/timmy/carmate/internal/service"
)

// ListUploadsQuery is the query string of GET /api/v1/uploads.
type ListUploadsQuery struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=car customer"`
	Status string `form:"status" binding:"omitempty,oneof=pending processing succeeded failed"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ListUploadsResponse is a page of upload records.
type ListUploadsResponse struct {
	Uploads []domain.Upload `json:"uploads"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// UploadsHandler serves the upload history of the calling company.
type UploadsHandler struct {
	uploadService *service.UploadService
}

// NewUploadsHandler creates a new upload history handler.
// Parameters:
//   - uploadService: upload service instance.
// Returns:
//   - *UploadsHandler: initialized handler.
func NewUploadsHandler(uploadService *service.UploadService) *UploadsHandler {
	return &UploadsHandler{uploadService: uploadService}
}

// ListUploads handles GET /api/v1/uploads.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *UploadsHandler) ListUploads(c *gin.Context) {
	var q ListUploadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	uploads, total, err := h.uploadService.List(c.Request.Context(), middleware.CompanyID(c), repository.UploadFilter{
		Kind:   domain.EntityKind(q.Kind),
		Status: domain.UploadStatus(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to list uploads: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
		return
	}
	if uploads == nil {
		uploads = []domain.Upload{}
	}

	c.JSON(http.StatusOK, ListUploadsResponse{
		Uploads: uploads,
		Total:   total,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
}

// GetUpload handles GET /api/v1/uploads/:id.
// The record carries the failure detail that upload responses omit.
func (h *UploadsHandler) GetUpload(c *gin.Context) {
	upload, err := h.uploadService.Get(c.Request.Context(), middleware.CompanyID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// GetUploadFile handles GET /api/v1/uploads/:id/file and returns the archived CSV.
func (h *UploadsHandler) GetUploadFile(c *gin.Context) {
	upload, data, err := h.uploadService.RawFile(c.Request.Context(), middleware.CompanyID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	name := path.Base(upload.FileName)
	if name == "" || name == "." || name == "/" {
		name = upload.ID + ".csv"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *UploadsHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUploadNotFound) || errors.Is(err, service.ErrNotArchived) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return
	}
	logger.CtxError(c.Request.Context(), "Failed to load upload: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
}
