package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/model"
)

// Header is the expected first row of an import CSV.
const Header = "kind,from,to,amount,memo"

const (
	numFields = 5
	colKind   = 0
	colFrom   = 1
	colTo     = 2
	colAmount = 3
	colMemo   = 4
)

// Parse reads instructions from an import CSV.
func Parse(r io.Reader) ([]model.Instruction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if got := strings.ToLower(strings.Join(records[0], ",")); got != Header {
		return nil, fmt.Errorf("unexpected header %q, want %q", got, Header)
	}

	var instrs []model.Instruction
	for i, rec := range records[1:] {
		in, err := UnmarshalInstruction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		in.Row = i + 2
		instrs = append(instrs, in)
	}
	return instrs, nil
}

// ParseFile opens and parses one import CSV.
func ParseFile(path string) ([]model.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	instrs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return instrs, nil
}

// UnmarshalInstruction converts a CSV row to an Instruction.
func UnmarshalInstruction(record []string) (model.Instruction, error) {
	if len(record) != numFields {
		return model.Instruction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind := model.InstructionKind(strings.ToLower(strings.TrimSpace(record[colKind])))
	switch kind {
	case model.KindPayment, model.KindSplit, model.KindPosition:
	default:
		return model.Instruction{}, fmt.Errorf("unknown kind %q", record[colKind])
	}

	from := strings.TrimSpace(record[colFrom])
	if from == "" {
		return model.Instruction{}, errors.New("missing from")
	}

	var to []string
	for _, name := range strings.Split(record[colTo], ";") {
		if name = strings.TrimSpace(name); name != "" {
			to = append(to, name)
		}
	}
	if len(to) == 0 {
		return model.Instruction{}, errors.New("missing to")
	}
	if kind != model.KindSplit && len(to) != 1 {
		return model.Instruction{}, fmt.Errorf("%s takes exactly one counterparty, got %d", kind, len(to))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return model.Instruction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Instruction{
		Kind:   kind,
		From:   from,
		To:     to,
		Amount: amount,
		Memo:   strings.TrimSpace(record[colMemo]),
	}, nil
}
