package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/owed-dev/owed/internal/ledger"
	"github.com/owed-dev/owed/internal/model"
)

const (
	numFields = 5
	colPerson = 0
	colCparty = 1
	colAmount = 2
	colMemo   = 3
	colRef    = 4
)

var csvHeader = []string{"person", "counterparty", "amount", "memo", "ref"}

// WriteCSV exports every position of every registered person, one row each.
func WriteCSV(w io.Writer, r *ledger.Registry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 1
	for _, a := range r.Accounts() {
		for _, p := range a.Positions() {
			row++
			if err := cw.Write(MarshalPosition(a.Name(), p)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalPosition converts one person's position to a CSV row.
func MarshalPosition(person string, p model.Position) []string {
	row := make([]string, numFields)
	row[colPerson] = person
	row[colCparty] = p.Counterparty
	row[colAmount] = p.Amount.String()
	row[colMemo] = p.Memo
	row[colRef] = p.Ref
	return row
}
