package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStorage stores raw upload files.
type ObjectStorage interface {
	// Put stores data under key, replacing any previous object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get returns the object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the URL for accessing an object
	GetURL(key string) string
}

// ArchiveKey returns the object key for an uploaded CSV:
// {prefix}/{company}/{kind}/{uploadID}.csv
func ArchiveKey(prefix string, companyID uint, kind, uploadID string) string {
	key := fmt.Sprintf("%d/%s/%s.csv", companyID, kind, uploadID)
	if p := strings.Trim(prefix, "/"); p != "" {
		return p + "/" + key
	}
	return key
}
