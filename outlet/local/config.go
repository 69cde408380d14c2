package local

import (
	"fmt"

	"github.com/kbukum/ocdsoutlet/validation"
)

// DefaultBasePath is the default root directory for written packages.
const DefaultBasePath = "./out"

// Config holds local filesystem backend configuration.
type Config struct {
	// BasePath is the root directory objects are written under.
	BasePath string `yaml:"base_path" mapstructure:"base_path" validate:"required"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
}

// Validate checks that the local configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("local: invalid config: %w", err)
	}
	return nil
}
