package views

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Record is the last time a view of a resource was reported
type Record struct {
	ResourceKey    string
	LastReportedAt time.Time
}

// Store persists Records, one per resource key
type Store interface {
	Get(ctx context.Context, key string) (Record, bool, error)
	Put(ctx context.Context, rec Record) error
}

// MemoryStore keeps records for the life of the process
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]time.Time
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]time.Time)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.records[key]
	return Record{ResourceKey: key, LastReportedAt: at}, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ResourceKey] = rec.LastReportedAt
	return nil
}

// SQLiteStore keeps records in the local state database so the cool-down
// survives between runs.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path.
// ":memory:" is accepted.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	createRecordsTable := `
	CREATE TABLE IF NOT EXISTS view_records (
		resource_key TEXT PRIMARY KEY,
		last_reported_at INTEGER NOT NULL  -- unix milliseconds
	)`
	if _, err := db.Exec(createRecordsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create view_records: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Record, bool, error) {
	var ms int64
	err := s.db.QueryRowContext(ctx,
		"SELECT last_reported_at FROM view_records WHERE resource_key = ?", key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{ResourceKey: key}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return Record{ResourceKey: key, LastReportedAt: time.UnixMilli(ms)}, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO view_records (resource_key, last_reported_at) VALUES (?, ?)
		ON CONFLICT(resource_key) DO UPDATE SET
			last_reported_at = excluded.last_reported_at`,
		rec.ResourceKey, rec.LastReportedAt.UnixMilli())
	return err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
