// Package client pushes CSV files to a running carmate API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/carmate/internal/domain"
)

const headerCompanyID = "X-Company-ID"

// UploadResponse is the API's reply to an upload.
type UploadResponse struct {
	Message  string `json:"message"`
	UploadID string `json:"upload_id"`
	Count    int    `json:"count"`
}

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
	UploadID   string
}

func (e *APIError) Error() string {
	if e.UploadID != "" {
		return fmt.Sprintf("carmate API error: status %d: %s (upload %s)", e.StatusCode, e.Message, e.UploadID)
	}
	return fmt.Sprintf("carmate API error: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the carmate upload API on behalf of one company.
type Client struct {
	client *resty.Client
}

// New creates a client for baseURL acting as companyID.
func New(baseURL string, companyID uint, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader(headerCompanyID, strconv.FormatUint(uint64(companyID), 10))
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{client: client}
}

// Upload sends data as a multipart CSV upload of the given kind.
func (c *Client) Upload(ctx context.Context, kind domain.EntityKind, fileName string, data []byte) (*UploadResponse, error) {
	path, err := uploadPath(kind)
	if err != nil {
		return nil, err
	}

	var resp UploadResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", fileName, bytes.NewReader(data)).
		SetResult(&resp).
		SetError(&resp).
		Post(path)

	if err != nil {
		return nil, fmt.Errorf("failed to call carmate API: %w", err)
	}

	if httpResp.StatusCode() != http.StatusOK {
		msg := resp.Message
		if msg == "" {
			msg = http.StatusText(httpResp.StatusCode())
		}
		return nil, &APIError{
			StatusCode: httpResp.StatusCode(),
			Message:    msg,
			UploadID:   resp.UploadID,
		}
	}

	return &resp, nil
}

func uploadPath(kind domain.EntityKind) (string, error) {
	switch kind {
	case domain.EntityKindCar:
		return "/api/v1/cars/upload", nil
	case domain.EntityKindCustomer:
		return "/api/v1/customers/upload", nil
	default:
		return "", fmt.Errorf("unsupported upload kind %q", kind)
	}
}
