package main

import (
	"fmt"

	"github.com/kbukum/ocdsoutlet/config"
	"github.com/kbukum/ocdsoutlet/observability"
	"github.com/kbukum/ocdsoutlet/outlet/local"
	"github.com/kbukum/ocdsoutlet/outlet/minio"
	"github.com/kbukum/ocdsoutlet/outlet/s3"
	"github.com/kbukum/ocdsoutlet/packer"
	"github.com/kbukum/ocdsoutlet/render"
)

// outletConfig holds the backend-independent write options.
type outletConfig struct {
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
	Renderer  string `yaml:"renderer" mapstructure:"renderer"`
}

// runConfig is everything one invocation reads from config.yml, the
// environment and flags.
type runConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Input is the release package file. Empty or "-" reads stdin.
	Input     string               `yaml:"input" mapstructure:"input"`
	Outlet    outletConfig         `yaml:"outlet" mapstructure:"outlet"`
	Packer    packer.Config        `yaml:"packer" mapstructure:"packer"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`

	S3    s3.Config    `yaml:"s3" mapstructure:"s3"`
	Minio minio.Config `yaml:"minio" mapstructure:"minio"`
	Local local.Config `yaml:"local" mapstructure:"local"`

	backend string
}

// ApplyDefaults fills the service defaults and those of the selected backend.
func (c *runConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	if c.Outlet.Renderer == "" {
		c.Outlet.Renderer = render.Default
	}
	switch c.backend {
	case s3.Backend:
		c.S3.ApplyDefaults()
	case local.Backend:
		c.Local.ApplyDefaults()
	}
}

// Validate checks the sections the selected backend uses.
func (c *runConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if _, err := render.ByName(c.Outlet.Renderer); err != nil {
		return fmt.Errorf("config.outlet.renderer: %w", err)
	}
	if err := c.Packer.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	_, err := c.providerConfig()
	return err
}

// providerConfig returns the validated configuration of the selected backend.
func (c *runConfig) providerConfig() (any, error) {
	switch c.backend {
	case s3.Backend:
		return &c.S3, c.S3.Validate()
	case minio.Backend:
		return &c.Minio, c.Minio.Validate()
	case local.Backend:
		return &c.Local, c.Local.Validate()
	default:
		return nil, fmt.Errorf("unknown backend %q", c.backend)
	}
}
