// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the CA table holding one row per calendar day.
package storage

import "database/sql"

// initSchema creates the CA table when it is missing.
func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS CA (
		date TEXT PRIMARY KEY,
		ca REAL DEFAULT 0.0,
		hours REAL DEFAULT 0.0,
		hsup REAL DEFAULT 0.0,
		comment TEXT
	);
	`

	_, err := db.Exec(schema)
	return err
}
