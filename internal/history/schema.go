package history

import "database/sql"

var migrations = []migration{
	{
		version: 1,
		up: []string{
			`CREATE TABLE schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,

			`CREATE TABLE renames (
				id INTEGER PRIMARY KEY AUTOINCREMENT,

				-- Where the rename happened
				backend TEXT NOT NULL,
				directory TEXT NOT NULL,

				-- The rename itself
				old_name TEXT NOT NULL,
				new_name TEXT NOT NULL,

				executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,

			`CREATE INDEX idx_renames_executed ON renames(executed_at)`,
			`CREATE INDEX idx_renames_directory ON renames(directory)`,

			`INSERT INTO schema_version (version) VALUES (1)`,
		},
	},
}

type migration struct {
	version int
	up      []string
}

// applyMigrations applies any pending schema migrations
func applyMigrations(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		// schema_version doesn't exist yet - this is a fresh database
		currentVersion = 0
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}

		for _, stmt := range m.up {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
