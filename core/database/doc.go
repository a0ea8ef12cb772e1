// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// configures MySQL connections from the application's configuration. A sqlite
// driver is supported as well so behavioural tests can run against an
// in-memory database with the same entities.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
