package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB-backed Store, for a firing log shared
// across multiple recognizer processes.
//
// The DSN format is the go-sql-driver/mysql one:
//
//	user:password@tcp(host:3306)/dbname?parseTime=true
type MySQLStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLStore opens a MySQL connection pool and ensures its schema exists.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open mysql: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping mysql: %w", err)
	}

	s := &MySQLStore{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQLStore) createTables(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS gesture_firings (
			network_id  VARCHAR(255) NOT NULL,
			sequence    INT NOT NULL,
			recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (network_id, sequence)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("history: create gesture_firings table: %w", err)
	}
	return nil
}

func (s *MySQLStore) Record(ctx context.Context, networkID string) (Firing, error) {
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
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sequence), 0) FROM gesture_firings WHERE network_id = ? FOR UPDATE`,
		networkID,
	)
	if err := row.Scan(&seq); err != nil {
		return Firing{}, fmt.Errorf("history: read max sequence: %w", err)
	}
	seq++

	at := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO gesture_firings (network_id, sequence, recorded_at) VALUES (?, ?, ?)`,
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

func (s *MySQLStore) List(ctx context.Context, networkID string) ([]Firing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("history: store closed")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT sequence, recorded_at FROM gesture_firings WHERE network_id = ? ORDER BY sequence`,
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

func (s *MySQLStore) Count(ctx context.Context, networkID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, fmt.Errorf("history: store closed")
	}

	var n int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gesture_firings WHERE network_id = ?`, networkID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count firings: %w", err)
	}
	return n, nil
}

func (s *MySQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
