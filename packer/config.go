package packer

import (
	"fmt"

	"github.com/kbukum/ocdsoutlet/validation"
)

// PagePlaceholder is replaced with the page number in the package uri.
const PagePlaceholder = "{page}"

// Config holds the paging options of a run.
type Config struct {
	// BatchSize is the number of releases per page. Zero writes one page.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=0"`
	// FailFast aborts the run on the first failed upload.
	FailFast bool `yaml:"fail_fast" mapstructure:"fail_fast"`
	// ManifestPath is where the manifest is written after the run. Empty skips it.
	ManifestPath string `yaml:"manifest_path" mapstructure:"manifest_path"`
}

// Validate checks the paging options.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("packer: invalid config: %w", err)
	}
	return nil
}
