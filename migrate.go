package main

import (
	"fmt"
	"log/slog"
)

// setupDatabase creates the schema as a one-shot maintenance step
func setupDatabase() error {
	db, err := openDatabase(databaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("creating database schema")
	if err := ensureSchema(db); err != nil {
		return err
	}
	slog.Info("schema created successfully")

	return nil
}

// verifyDatabaseConnection tests the database connection
func verifyDatabaseConnection() error {
	db, err := openDatabase(databaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connection verified")
	return nil
}
