package bootstrap

import (
	"github.com/kbukum/ocdsoutlet/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) satisfies it
// via promoted methods; embedding structs may override ApplyDefaults and
// Validate to cover their own sections.
//
//	type RunConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    S3 s3.Config         `yaml:"s3" mapstructure:"s3"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
