package history

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// History wraps a sql.DB connection to the aw-analyzer trend database.
type History struct {
	conn *sql.DB
}

// Open opens or creates the SQLite database at path, creating its parent
// directory if needed, and runs migrations.
func Open(path string) (*History, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	h := &History{conn: conn}
	if err := h.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return h, nil
}

// OpenInMemory opens an in-memory database, for tests.
func OpenInMemory() (*History, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	h := &History{conn: conn}
	if err := h.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.conn.Close()
}
