// Package config provides configuration management for the return box backend.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (bind address, port, API key)
//   - Database: MySQL/sqlite connection details
//   - Mqtt: broker connection, TLS, command topic template and unlock cooldown
//   - Storage: S3/MinIO credentials and bucket for cover images
//   - Library: lending policy (fine rates, loan period)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
