package model

import "github.com/shopspring/decimal"

// DefaultPaymentMemo is the memo used for payments recorded without one.
const DefaultPaymentMemo = "Payment"

// Position is one signed entry on a person's ledger.
//
// A positive Amount means the counterparty owes the owner of the position;
// a negative Amount means the owner owes the counterparty.
type Position struct {
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	Memo         string          `json:"memo"`
	Ref          string          `json:"ref,omitempty"` // shared by both legs of a pair
}

// Mirror returns the offsetting position booked on the counterparty's side.
func (p Position) Mirror(owner string) Position {
	return Position{
		Counterparty: owner,
		Amount:       p.Amount.Neg(),
		Memo:         p.Memo,
		Ref:          p.Ref,
	}
}

// Equal reports whether two positions carry the same values.
// Amounts compare numerically, so "10" equals "10.00".
func (p Position) Equal(o Position) bool {
	return p.Counterparty == o.Counterparty &&
		p.Amount.Equal(o.Amount) &&
		p.Memo == o.Memo &&
		p.Ref == o.Ref
}
