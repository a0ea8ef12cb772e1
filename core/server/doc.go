// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure (bind address, port, API key) so
// core/config can embed it next to the other partial configurations.
package server
