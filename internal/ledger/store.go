// Package ledger keeps a local record of bootstrap outcomes so failed
// accounts can be found and reconciled later.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration
)

type Entry struct {
	AccountID string
	Status    string
	Stage     string
	Error     string
	Relay     string
	At        time.Time
}

func (e Entry) Failed() bool {
	return e.Status != "Success"
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates a ledger at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	// One writer at a time keeps SQLite from reporting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS outcomes (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id TEXT NOT NULL,
			status     TEXT NOT NULL,
			stage      TEXT NOT NULL DEFAULT '',
			error      TEXT NOT NULL DEFAULT '',
			relay      TEXT NOT NULL DEFAULT '',
			ts         TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_account ON outcomes(account_id, seq);
	`)
	if err != nil {
		return fmt.Errorf("creating ledger tables: %w", err)
	}
	return nil
}

// Record appends e. A zero At is stamped with the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (account_id, status, stage, error, relay, ts)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.AccountID, e.Status, e.Stage, e.Error, e.Relay, e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording outcome for %s: %w", e.AccountID, err)
	}
	return nil
}

// Latest returns the most recent entry per account, newest first.
func (s *Store) Latest(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_id, status, stage, error, relay, ts
		FROM outcomes
		WHERE seq IN (SELECT MAX(seq) FROM outcomes GROUP BY account_id)
		ORDER BY seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying latest outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.AccountID, &e.Status, &e.Stage, &e.Error, &e.Relay, &ts); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		e.At, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing outcome time %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Failed returns the accounts whose latest outcome was a failure.
func (s *Store) Failed(ctx context.Context) ([]string, error) {
	latest, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range latest {
		if e.Failed() && e.AccountID != "" {
			ids = append(ids, e.AccountID)
		}
	}
	return ids, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
