// Package config loads run configuration for the outlet CLI.
//
// It uses Viper to read a config.yml, binds OUTLET_-prefixed environment
// variables (a .env file is loaded first through godotenv) and finally
// applies command line flags that were explicitly set.
//
// # Usage
//
//	var cfg RunConfig
//	err := config.LoadConfig("outlet", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithFlags(flags, map[string]string{"bucket": "s3.bucket"}),
//	)
//
// OUTLET_S3_BUCKET=releases sets s3.bucket.
package config
