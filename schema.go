package main

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(20) NOT NULL CHECK (type IN ('income', 'expense')),
		amount DECIMAL(12,2) NOT NULL CHECK (amount > 0),
		category_id INTEGER,
		description VARCHAR(255),
		date DATE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_transactions_user_type ON transactions(user_id, type);
`

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// seedDemoData inserts a demo account with a month of activity for
// presentations. Idempotent: it only runs when the demo user is absent.
func seedDemoData(db *sql.DB) error {
	var cnt int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = 'demo@example.com'`).Scan(&cnt); err != nil {
		return fmt.Errorf("checking demo user: %w", err)
	}
	if cnt > 0 {
		return nil
	}

	hash, err := hashPassword("DemoPass1")
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID int
	err = tx.QueryRow(
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		"Demo User", "demo@example.com", hash,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	// Income/expense activity spread over the last ~30 days. Category ids
	// reference the static catalog (1=Salary, 2=Freelance, 8=Food & Dining,
	// 9=Transportation, 11=Entertainment, 12=Bills & Utilities).
	const demoTx = `
	INSERT INTO transactions (user_id, type, amount, category_id, description, date) VALUES
	($1, 'income', 3200.00, 1, 'Monthly Salary', CURRENT_DATE - INTERVAL '28 days'),
	($1, 'income', 850.00, 2, 'Freelance: Landing Page', CURRENT_DATE - INTERVAL '25 days'),
	($1, 'expense', 1500.00, 12, 'Rent - Apartment', CURRENT_DATE - INTERVAL '24 days'),
	($1, 'expense', 120.45, 12, 'Utilities - Electricity', CURRENT_DATE - INTERVAL '22 days'),
	($1, 'expense', 96.72, 8, 'Groceries - Whole Foods', CURRENT_DATE - INTERVAL '20 days'),
	($1, 'expense', 45.00, 9, 'Subway Pass', CURRENT_DATE - INTERVAL '19 days'),
	($1, 'expense', 28.50, 11, 'Movie Night', CURRENT_DATE - INTERVAL '16 days'),
	($1, 'expense', 64.11, 8, 'Groceries - Trader Joes', CURRENT_DATE - INTERVAL '14 days'),
	($1, 'income', 600.00, 2, 'Freelance: Dashboard Charts', CURRENT_DATE - INTERVAL '13 days'),
	($1, 'expense', 60.00, 12, 'Utilities - Internet', CURRENT_DATE - INTERVAL '11 days'),
	($1, 'expense', 140.00, 11, 'Concert Tickets', CURRENT_DATE - INTERVAL '8 days'),
	($1, 'expense', 132.39, 8, 'Groceries - Costco', CURRENT_DATE - INTERVAL '6 days'),
	($1, 'expense', 22.30, 9, 'Rideshare', CURRENT_DATE - INTERVAL '4 days'),
	($1, 'expense', 54.80, 11, 'Dinner Out', CURRENT_DATE - INTERVAL '1 days')
	`
	if _, err := tx.Exec(demoTx, userID); err != nil {
		return fmt.Errorf("seeding demo transactions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
