package storage

import (
	"strings"

	"github.com/timmy/carmate/internal/config"
)

// NewStorage creates an ObjectStorage from configuration.
// Parameters:
//   - cfg: storage configuration with credentials already resolved.
// Returns:
//   - ObjectStorage: initialized storage client, nil when storage is disabled.
//   - error: non-nil if the configuration is invalid or the client cannot be created.
func NewStorage(cfg *config.StorageConfig) (ObjectStorage, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storeType := StorageType(cfg.Type)
	if storeType == "" {
		storeType = detectStorageType(cfg.Endpoint)
	}

	s, err := NewS3Storage(&S3Config{
		Type:      storeType,
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		PublicURL: cfg.PublicURL,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func detectStorageType(endpoint string) StorageType {
	endpoint = strings.ToLower(endpoint)

	switch {
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return StorageTypeR2
	case endpoint == "", strings.Contains(endpoint, "amazonaws.com"):
		return StorageTypeS3
	default:
		return StorageTypeS3Compatible
	}
}
