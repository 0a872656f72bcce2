package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite-backed Store. Single-process, zero external
// setup; good for a desktop demo or a single recognizer instance that wants
// its firing log to survive a restart.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewSQLiteStore opens (creating if absent) a SQLite database at path and
// ensures its schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	// A single connection avoids SQLITE_BUSY from this process's own
	// concurrent writers; WAL mode still lets other processes read.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: %s: %w", pragma, err)
		}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS firings (
			network_id  TEXT NOT NULL,
			sequence    INTEGER NOT NULL,
			recorded_at TIMESTAMP NOT NULL,
			PRIMARY KEY (network_id, sequence)
		)
	`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("history: create firings table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Record(ctx context.Context, networkID string) (Firing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Firing{}, fmt.Errorf("history: store closed")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Firing{}, fmt.Errorf("history: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seq int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(sequence), 0) FROM firings WHERE network_id = ?`, networkID)
	if err := row.Scan(&seq); err != nil {
		return Firing{}, fmt.Errorf("history: read max sequence: %w", err)
	}
	seq++

	at := time.Now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO firings (network_id, sequence, recorded_at) VALUES (?, ?, ?)`,
		networkID, seq, at,
	)
	if err != nil {
		return Firing{}, fmt.Errorf("history: insert firing: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Firing{}, fmt.Errorf("history: commit: %w", err)
	}

	return Firing{NetworkID: networkID, Sequence: seq, At: at}, nil
}

func (s *SQLiteStore) List(ctx context.Context, networkID string) ([]Firing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("history: store closed")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT sequence, recorded_at FROM firings WHERE network_id = ? ORDER BY sequence`,
		networkID,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query firings: %w", err)
	}
	defer rows.Close()

	var out []Firing
	for rows.Next() {
		var f Firing
		f.NetworkID = networkID
		if err := rows.Scan(&f.Sequence, &f.At); err != nil {
			return nil, fmt.Errorf("history: scan firing: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate firings: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *SQLiteStore) Count(ctx context.Context, networkID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, fmt.Errorf("history: store closed")
	}

	var n int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM firings WHERE network_id = ?`, networkID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count firings: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Path returns the filesystem path this store was opened with.
func (s *SQLiteStore) Path() string { return s.path }
