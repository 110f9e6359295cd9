package config

import (
	"fmt"
	"os"
)

// StorageConfig describes the S3-compatible bucket raw uploads are archived to.
type StorageConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Type         string `mapstructure:"type"` // s3compatible, r2, s3
	Endpoint     string `mapstructure:"endpoint"`
	Region       string `mapstructure:"region"`
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"` // key prefix for archived CSVs
	UseSSL       bool   `mapstructure:"use_ssl"`
	PublicURL    string `mapstructure:"public_url"`
	AccessKey    string `mapstructure:"access_key"`
	AccessKeyEnv string `mapstructure:"access_key_env"`
	SecretKey    string `mapstructure:"secret_key"`
	SecretKeyEnv string `mapstructure:"secret_key_env"`
}

// ResolveEnvVars loads credentials from the named environment variables.
// Values set directly take precedence.
func (c *StorageConfig) ResolveEnvVars() {
	if c.AccessKeyEnv != "" && c.AccessKey == "" {
		c.AccessKey = os.Getenv(c.AccessKeyEnv)
	}
	if c.SecretKeyEnv != "" && c.SecretKey == "" {
		c.SecretKey = os.Getenv(c.SecretKeyEnv)
	}
}

// Validate checks that an enabled storage config has all required fields.
// A disabled config is always valid.
func (c *StorageConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Bucket == "" {
		return fmt.Errorf("storage: bucket is required")
	}

	switch c.Type {
	case "s3compatible", "r2", "s3":
	default:
		return fmt.Errorf("storage: unknown type %q", c.Type)
	}

	if c.Type != "s3" && c.Endpoint == "" {
		return fmt.Errorf("storage: endpoint is required for type %q", c.Type)
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("storage: credentials are required (set directly or via %s/%s)", c.AccessKeyEnv, c.SecretKeyEnv)
	}
	return nil
}
