package postgres

import "database/sql"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cars (
		owner TEXT PRIMARY KEY,
		price_per_day NUMERIC(39,0) NOT NULL,
		status TEXT NOT NULL,
		available_to_withdraw NUMERIC(39,0) NOT NULL DEFAULT 0,
		commission_percent NUMERIC(39,0) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS rentals (
		renter TEXT NOT NULL,
		owner TEXT NOT NULL,
		total_days_to_rent BIGINT NOT NULL,
		amount NUMERIC(39,0) NOT NULL,
		commission NUMERIC(39,0) NOT NULL DEFAULT 0,
		PRIMARY KEY (renter, owner)
	)`,
	`CREATE TABLE IF NOT EXISTS contract_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS asset_accounts (
		principal TEXT PRIMARY KEY,
		balance NUMERIC(39,0) NOT NULL DEFAULT 0
	)`,
}

// Migrate applies the schema. Statements are idempotent so this is safe to
// run on every startup.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
