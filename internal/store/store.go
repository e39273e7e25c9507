// Package store implements the persistent migration state on SQLite. It maps
// source paths to remote identifiers for folders and pages independently,
// making creation idempotent and resumable across restarts.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// Pragmas applied on Open. synchronous=FULL makes every committed Put
// durable before the call returns; a creator must not report an item as
// created until its mapping survives a crash.
const openPragmas = `PRAGMA journal_mode = WAL;
PRAGMA synchronous = FULL;
PRAGMA busy_timeout = 5000;`

// Store is the migration state store. Reads may run concurrently during the
// creator fan-out; writes are serialized by the mutex (single-writer, no
// cross-process coordination).
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the store at dbPath and applies the
// schema. The caller owns the handle and must Close it.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(openPragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle. Idempotent. After Close, operations
// return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	s.db = nil
	return nil
}

// checkOpen reports ErrStoreClosed after Close. Callers must hold the mutex.
func (s *Store) checkOpen() error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	return nil
}

// Stats returns the record counts of all tables.
func (s *Store) Stats() (types.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats types.Stats
	if err := s.checkOpen(); err != nil {
		return stats, err
	}

	for _, c := range []struct {
		table string
		dst   *int
	}{
		{"folders", &stats.Folders},
		{"pages", &stats.Pages},
		{"runs", &stats.Runs},
	} {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dst); err != nil {
			return types.Stats{}, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return stats, nil
}

// Clear wipes all migration state: folders, pages, and runs. Destructive;
// never called implicitly by the creators.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"folders", "pages", "runs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return tx.Commit()
}
