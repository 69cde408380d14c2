// Package logger provides structured logging for the outlet tool using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("outlet.s3")
//	log.Info("uploaded", logger.Fields("key", key))
//
// Critical logs at fatal severity without terminating the process; it is
// the level used for failed uploads, which the run survives.
package logger
