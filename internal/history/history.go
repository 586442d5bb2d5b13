// Package history keeps a journal of executed renames in a local
// SQLite database, so past runs can be reviewed after the fact.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/zygboom-max/tv-rename-tool/internal/paths"
)

// DB is the rename journal handle.
type DB struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Open opens or creates the journal at the default location,
// ~/.config/tvrename/history.db for the actual user.
func Open() (*DB, error) {
	p, err := paths.HistoryPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve history path: %w", err)
	}
	return OpenPath(p)
}

// OpenPath opens or creates the journal at a specific path
func OpenPath(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	// WAL mode so a watch run and a history query can coexist
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	h := &DB{
		db:   db,
		path: path,
	}

	if err := applyMigrations(h.db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return h, nil
}

// OpenInMemory opens an in-memory journal for testing
func OpenInMemory() (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:?_cache=shared")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping in-memory database: %w", err)
	}

	h := &DB{
		db:   db,
		path: ":memory:",
	}

	if err := applyMigrations(h.db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate in-memory database: %w", err)
	}

	return h, nil
}

// Close closes the database connection
func (h *DB) Close() error {
	return h.db.Close()
}

// Path returns the filesystem path to the database file
func (h *DB) Path() string {
	return h.path
}
