package model

import "github.com/shopspring/decimal"

// InstructionKind selects which ledger operation an imported row performs.
type InstructionKind string

const (
	KindPayment  InstructionKind = "payment"
	KindSplit    InstructionKind = "split"
	KindPosition InstructionKind = "position"
)

// Instruction represents a parsed import CSV row.
type Instruction struct {
	Row    int // 1-based CSV row, header included
	Kind   InstructionKind
	From   string
	To     []string // several names only for splits
	Amount decimal.Decimal
	Memo   string
}
