package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/owed-dev/owed/internal/model"
)

const recordExt = ".json"

// DirStore keeps one <name>.json file per person in a flat directory.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir. The directory is created on first write.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the storage directory.
func (s *DirStore) Dir() string {
	return s.dir
}

// ReadRecord reads <name>.json. Returns an error wrapping ErrNotFound if it does not exist.
func (s *DirStore) ReadRecord(name string) ([]model.Position, error) {
	path, err := s.recordPath(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("record %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", path, err)
	}

	positions, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", path, err)
	}
	slog.Debug("record read", "name", name, "positions", len(positions), "path", path)
	return positions, nil
}

// WriteRecord replaces <name>.json with positions. The file is written to a
// temporary sibling first and renamed into place.
func (s *DirStore) WriteRecord(name string, positions []model.Position) error {
	path, err := s.recordPath(name)
	if err != nil {
		return err
	}

	data, err := Encode(positions)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing record %s: %w", path, err)
	}
	slog.Debug("record written", "name", name, "positions", len(positions), "path", path)
	return nil
}

// ListRecordNames returns the person names of all *.json files, sorted.
// The extension must be lower case, since records are read back as
// <name>.json. A missing directory yields no names.
func (s *DirStore) ListRecordNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) != recordExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), recordExt)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op.
func (s *DirStore) Close() error { return nil }

func (s *DirStore) recordPath(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("name %q cannot be used as a file name", name)
	}
	return filepath.Join(s.dir, name+recordExt), nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("record name must not be empty")
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("record name %q contains a NUL byte", name)
	}
	return nil
}
