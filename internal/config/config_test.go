package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 200, cfg.Ingest.BatchSize)
	assert.False(t, cfg.Ingest.Atomic)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
database:
  driver: postgres
  host: db
  user: carmate
  password: secret
  dbname: carmate
ingest:
  batch_size: 50
  atomic: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Ingest.BatchSize)
	assert.True(t, cfg.Ingest.Atomic)
	assert.Equal(t, 10000, cfg.Ingest.MaxRows)
	assert.Equal(t, int64(5<<20), cfg.Ingest.MaxFileSize)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "host=db port=5432 user=carmate password=secret dbname=carmate sslmode=disable", cfg.Database.DSN())
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ingest:\n  batch_size: 50\n"), 0o644))
	t.Setenv("INGEST_BATCH_SIZE", "25")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/carmate")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Ingest.BatchSize)
	cfg.Database.Driver = "postgres"
	assert.Equal(t, "postgres://u:p@localhost/carmate", cfg.Database.DSN())
}

func TestDatabaseDSNSQLite(t *testing.T) {
	c := DatabaseConfig{Driver: "sqlite", Path: ":memory:"}
	assert.Equal(t, ":memory:", c.DSN())
}

func TestStorageConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StorageConfig
		wantErr bool
	}{
		{"disabled", StorageConfig{}, false},
		{"missing bucket", StorageConfig{Enabled: true, Type: "s3"}, true},
		{"unknown type", StorageConfig{Enabled: true, Type: "gcs", Bucket: "b"}, true},
		{"r2 needs endpoint", StorageConfig{Enabled: true, Type: "r2", Bucket: "b", AccessKey: "a", SecretKey: "s"}, true},
		{"missing credentials", StorageConfig{Enabled: true, Type: "s3", Bucket: "b"}, true},
		{"valid s3", StorageConfig{Enabled: true, Type: "s3", Bucket: "b", AccessKey: "a", SecretKey: "s"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStorageConfigResolveEnvVars(t *testing.T) {
	t.Setenv("TEST_STORAGE_AK", "ak")
	t.Setenv("TEST_STORAGE_SK", "sk")

	c := StorageConfig{AccessKeyEnv: "TEST_STORAGE_AK", SecretKeyEnv: "TEST_STORAGE_SK", SecretKey: "direct"}
	c.ResolveEnvVars()

	assert.Equal(t, "ak", c.AccessKey)
	assert.Equal(t, "direct", c.SecretKey)
}
