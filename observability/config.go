package observability

import (
	"time"

	"github.com/kbukum/ocdsoutlet/validation"
)

// Config configures the OTLP exporters.
type Config struct {
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	// Empty disables export.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	// Insecure allows plain HTTP (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,max=1"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Enabled reports whether exporters should be created.
func (c *Config) Enabled() bool {
	return c.Endpoint != ""
}

// ApplyDefaults fills unset fields. A zero SampleRate means "sample all".
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the exporter settings.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
