// Package config provides configuration management for the journal loader.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: repository connection details (mysql or sqlite)
//   - Storage: S3/MinIO credentials for feeds stored in buckets
//   - Log: Logging level and format
//   - Sync: default dry-run flag and Medline / PMC source locators
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
