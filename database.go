package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

var db *sql.DB

// normalizeDatabaseURL rewrites postgresql:// to postgres:// and ensures an
// explicit sslmode so the URL parses the same across environments
func normalizeDatabaseURL(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgresql:") {
		databaseURL = "postgres" + databaseURL[len("postgresql"):]
	}
	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "?"
		if strings.Contains(databaseURL, "?") {
			separator = "&"
		}
		databaseURL = databaseURL + separator + "sslmode=disable"
	}
	return databaseURL
}

// openDatabase connects to PostgreSQL, waiting for the server to come up
func openDatabase(databaseURL string) (*sql.DB, error) {
	config, err := pgx.ParseConfig(normalizeDatabaseURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	maxRetries := 60
	retryDelay := 2 * time.Second

	var conn *sql.DB
	for i := 0; i < maxRetries; i++ {
		conn = stdlib.OpenDB(*config)
		if err := conn.Ping(); err != nil {
			conn.Close()
			if i < maxRetries-1 {
				slog.Info("database not ready, retrying",
					"delay", retryDelay, "attempt", i+1, "max_attempts", maxRetries)
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
		}
		slog.Info("database connection established")
		break
	}

	return conn, nil
}

// initDB initializes the global connection and makes sure the schema exists
func initDB() error {
	conn, err := openDatabase(databaseURL())
	if err != nil {
		return err
	}

	if err := ensureSchema(conn); err != nil {
		conn.Close()
		return err
	}

	db = conn
	return nil
}
