// Package store persists each person's positions as one named record.
//
// Records are JSON arrays of positions. The directory backend keeps one
// file per person; the SQLite backend keeps one row per person holding the
// same JSON payload.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/id"
	"github.com/owed-dev/owed/internal/model"
)

// ErrNotFound is returned by ReadRecord when no record exists for a name.
var ErrNotFound = errors.New("record not found")

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store reads and writes whole position records keyed by person name.
type Store interface {
	ReadRecord(name string) ([]model.Position, error)
	WriteRecord(name string, positions []model.Position) error
	ListRecordNames() ([]string, error)
	Close() error
}

// Open returns the Store for a backend name. An empty backend means JSON.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendJSON:
		return NewDirStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// rawPosition accepts both the current keys and the keys of the older
// German-language data files (Gegenpartei, Betrag, Betreff).
type rawPosition struct {
	Counterparty *string          `json:"counterparty"`
	Amount       *decimal.Decimal `json:"amount"`
	Memo         *string          `json:"memo"`
	Ref          string           `json:"ref"`

	LegacyCounterparty *string          `json:"Gegenpartei"`
	LegacyAmount       *decimal.Decimal `json:"Betrag"`
	LegacyMemo         *string          `json:"Betreff"`
}

// Encode serializes positions as an indented JSON array.
func Encode(positions []model.Position) ([]byte, error) {
	if positions == nil {
		positions = []model.Position{}
	}
	data, err := json.MarshalIndent(positions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding positions: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON array of positions, preserving order.
func Decode(data []byte) ([]model.Position, error) {
	var raws []rawPosition
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding positions: %w", err)
	}

	positions := make([]model.Position, 0, len(raws))
	for i, r := range raws {
		p, err := r.position()
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func (r rawPosition) position() (model.Position, error) {
	cp := firstString(r.Counterparty, r.LegacyCounterparty)
	if cp == nil {
		return model.Position{}, errors.New("missing counterparty")
	}

	amount := r.Amount
	if amount == nil {
		amount = r.LegacyAmount
	}
	if amount == nil {
		return model.Position{}, errors.New("missing amount")
	}

	ref, err := id.ParseRef(r.Ref)
	if err != nil {
		return model.Position{}, err
	}

	var memo string
	if m := firstString(r.Memo, r.LegacyMemo); m != nil {
		memo = *m
	}

	return model.Position{
		Counterparty: *cp,
		Amount:       *amount,
		Memo:         memo,
		Ref:          ref,
	}, nil
}

func firstString(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
