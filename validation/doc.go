// Package validation checks configuration and input values.
//
// Struct tags cover backend configs:
//
//	type Config struct {
//	    Bucket string `mapstructure:"bucket" validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
// The collector form covers checks that depend on several fields:
//
//	err := validation.New().
//	    Required("uri", uri).
//	    Custom(pages <= 1 || hasPage, "uri", "must contain {page}").
//	    Error()
package validation
