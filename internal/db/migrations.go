package db

import (
	"database/sql"
	"fmt"
)

// migrations run in order after the base schema. The database's
// user_version records how many have been applied. Append only.
var migrations = []string{
	// 1: listings filter on type and status.
	`CREATE INDEX IF NOT EXISTS idx_reports_type_status ON reports(type, status)`,
	// 2: conversation lists look chats up by report.
	`CREATE INDEX IF NOT EXISTS idx_chats_report ON chats(report_id)`,
}

// Migrate applies pending migrations.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}
