package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is a handle on the scan-history database.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the scan-history database at path, creating parent
// directories as needed. WAL keeps a watch daemon writing scan rows from
// blocking a concurrent history query; the busy timeout covers the
// remaining write/write collisions.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return prepare(conn, "PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", "PRAGMA foreign_keys=ON")
}

// OpenInMemory opens a throwaway in-memory database. Tests use it.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	return prepare(conn, "PRAGMA foreign_keys=ON")
}

// prepare applies connection pragmas and brings the schema up to date,
// closing the connection on any failure.
func prepare(conn *sql.DB, pragmas ...string) (*DB, error) {
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("applying %s: %w", p, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
