package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/owed-dev/owed/internal/model"
)

// SQLiteStore keeps one row per person in a records table. The payload is
// the same JSON array the directory backend writes.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database file at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "owed.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// ReadRecord returns the positions stored for name.
func (s *SQLiteStore) ReadRecord(name string) ([]model.Position, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM records WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select record %q: %w", name, err)
	}

	positions, err := Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", name, err)
	}
	slog.Debug("record read", "name", name, "positions", len(positions), "db", s.path)
	return positions, nil
}

// WriteRecord replaces the row for name.
func (s *SQLiteStore) WriteRecord(name string, positions []model.Position) error {
	if err := validateName(name); err != nil {
		return err
	}

	payload, err := Encode(positions)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`INSERT INTO records(name, payload) VALUES(?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`, name, payload); err != nil {
		return fmt.Errorf("upsert record %q: %w", name, err)
	}
	slog.Debug("record written", "name", name, "positions", len(positions), "db", s.path)
	return nil
}

// ListRecordNames returns all stored names, sorted.
func (s *SQLiteStore) ListRecordNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM records ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
