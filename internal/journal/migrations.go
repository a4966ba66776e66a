package journal

import "fmt"

// migrate runs database migrations.
func (j *Journal) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS pending_changes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			board_date DATE NOT NULL,
			position   INTEGER NOT NULL,
			kind       TEXT NOT NULL CHECK(kind IN ('reassign', 'time-shift', 'assign')),
			payload    TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_pending_changes_date ON pending_changes(board_date);
	`

	if _, err := j.db.Exec(query); err != nil {
		return fmt.Errorf("creating pending_changes table: %w", err)
	}

	return nil
}
