package s3

import (
	"fmt"

	"github.com/kbukum/ocdsoutlet/validation"
)

// DefaultRegion is used when neither the config nor the environment names one.
const DefaultRegion = "us-east-1"

// Config holds S3 backend configuration. Credentials left empty are resolved
// through the default AWS chain (environment, shared config, instance role).
type Config struct {
	// Bucket is the S3 bucket name.
	Bucket string `yaml:"bucket" mapstructure:"bucket" validate:"required"`

	// Region is the AWS region of the client.
	Region string `yaml:"region" mapstructure:"region"`

	// Endpoint is a custom S3-compatible endpoint (e.g. LocalStack).
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`

	// AccessKey is the AWS access key ID.
	AccessKey string `yaml:"access_key" mapstructure:"access_key" validate:"required_with=SecretKey"`

	// SecretKey is the AWS secret access key.
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key" validate:"required_with=AccessKey"`

	// ForcePathStyle forces path-style requests. Always on with a custom Endpoint.
	ForcePathStyle bool `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint != "" {
		c.ForcePathStyle = true
	}
}

// Validate checks that the S3 configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("s3: invalid config: %w", err)
	}
	return nil
}

// StaticCredentials reports whether explicit keys were configured.
func (c *Config) StaticCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}
