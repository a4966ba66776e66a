// Package journal provides SQLite persistence for adjust-mode
// sessions, so an interrupted session's pending changes can be
// restored for the same board date.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// Journal stores pending-change batches keyed by board date.
type Journal struct {
	db *sql.DB
}

// New opens (or creates) the journal database and runs migrations.
func New(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return j, nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}

// SaveSession replaces the journaled batch for a board date with the
// given changes, preserving their order.
func (j *Journal) SaveSession(ctx context.Context, date time.Time, changes []ledger.Change) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dateKey := schedule.FormatBoardDate(date)

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_changes WHERE board_date = ?`, dateKey); err != nil {
		return fmt.Errorf("clearing previous session: %w", err)
	}

	const insert = `
		INSERT INTO pending_changes (board_date, position, kind, payload)
		VALUES (?, ?, ?, ?)
	`
	for i, c := range changes {
		payload, err := encodeChange(c)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, dateKey, i, string(c.Kind()), payload); err != nil {
			return fmt.Errorf("inserting change: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// LoadSession returns the journaled batch for a board date, in its
// original order. A date with no session yields an empty slice.
func (j *Journal) LoadSession(ctx context.Context, date time.Time) ([]ledger.Change, error) {
	const query = `
		SELECT kind, payload
		FROM pending_changes
		WHERE board_date = ?
		ORDER BY position
	`

	rows, err := j.db.QueryContext(ctx, query, schedule.FormatBoardDate(date))
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var changes []ledger.Change
	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, fmt.Errorf("scanning change: %w", err)
		}
		c, err := decodeChange(ledger.ChangeKind(kind), payload)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating changes: %w", err)
	}
	return changes, nil
}

// ClearSession discards any journaled batch for the board date.
func (j *Journal) ClearSession(ctx context.Context, date time.Time) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM pending_changes WHERE board_date = ?`,
		schedule.FormatBoardDate(date)); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// HasSession reports whether a journaled batch exists for the date.
func (j *Journal) HasSession(ctx context.Context, date time.Time) (bool, error) {
	var count int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_changes WHERE board_date = ?`,
		schedule.FormatBoardDate(date)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting session changes: %w", err)
	}
	return count > 0, nil
}

func encodeChange(c ledger.Change) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding %s change: %w", c.Kind(), err)
	}
	return string(data), nil
}

func decodeChange(kind ledger.ChangeKind, payload string) (ledger.Change, error) {
	switch kind {
	case ledger.KindReassign:
		var c ledger.Reassign
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("decoding reassign change: %w", err)
		}
		return c, nil
	case ledger.KindTimeShift:
		var c ledger.TimeShift
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("decoding time-shift change: %w", err)
		}
		return c, nil
	case ledger.KindAssign:
		var c ledger.Assign
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("decoding assign change: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown change kind %q", kind)
	}
}
