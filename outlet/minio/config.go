package minio

import (
	"fmt"

	"github.com/kbukum/ocdsoutlet/validation"
)

// Config holds settings for an S3-compatible server reached through minio-go.
type Config struct {
	// Endpoint is the server host:port, without scheme.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required,hostname_port"`
	// Bucket is the target bucket name.
	Bucket string `yaml:"bucket" mapstructure:"bucket" validate:"required"`
	// Region is sent with requests when set.
	Region    string `yaml:"region" mapstructure:"region"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key" validate:"required_with=SecretKey"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key" validate:"required_with=AccessKey"`
	// UseSSL selects https.
	UseSSL bool `yaml:"use_ssl" mapstructure:"use_ssl"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("minio: invalid config: %w", err)
	}
	return nil
}
