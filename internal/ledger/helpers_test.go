package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/model"
	"github.com/owed-dev/owed/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memStore implements store.Store in memory. Names listed in failWrite or
// failRead return errors.
type memStore struct {
	records   map[string][]model.Position
	failWrite map[string]bool
	failRead  map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		records:   make(map[string][]model.Position),
		failWrite: make(map[string]bool),
		failRead:  make(map[string]bool),
	}
}

func (m *memStore) ReadRecord(name string) ([]model.Position, error) {
	if m.failRead[name] {
		return nil, errors.New("disk on fire")
	}
	ps, ok := m.records[name]
	if !ok {
		return nil, fmt.Errorf("record %q: %w", name, store.ErrNotFound)
	}
	return append([]model.Position(nil), ps...), nil
}

func (m *memStore) WriteRecord(name string, positions []model.Position) error {
	if m.failWrite[name] {
		return errors.New("disk full")
	}
	m.records[name] = append([]model.Position(nil), positions...)
	return nil
}

func (m *memStore) ListRecordNames() ([]string, error) {
	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memStore) Close() error { return nil }
