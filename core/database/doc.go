// Package database handles database connections.
//
// It wraps GORM to configure either a MySQL connection (production) or a
// SQLite database (local runs and tests) from the application's configuration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
