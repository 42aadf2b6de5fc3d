package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/match"
	"github.com/owed-dev/owed/internal/model"
)

// Account is a named person owning an ordered, append-only list of positions.
type Account struct {
	name      string
	positions []model.Position
}

// CounterpartyBalance is the net amount booked against one counterparty string.
type CounterpartyBalance struct {
	Counterparty string
	Amount       decimal.Decimal
	Positions    int
}

// NewAccount creates an unregistered account. Most callers use Registry.Create.
func NewAccount(name string, positions ...model.Position) *Account {
	return &Account{name: name, positions: append([]model.Position(nil), positions...)}
}

// Name returns the account's name.
func (a *Account) Name() string { return a.name }

// Len returns the number of positions.
func (a *Account) Len() int { return len(a.positions) }

// Positions returns a copy of the positions in booking order.
func (a *Account) Positions() []model.Position {
	out := make([]model.Position, len(a.positions))
	copy(out, a.positions)
	return out
}

// Balance returns the sum of all position amounts, rounded to cents.
func (a *Account) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, p := range a.positions {
		total = total.Add(p.Amount)
	}
	return RoundCents(total)
}

// BalanceWith returns the sum of the amounts booked against p, rounded to
// cents. A position counts when its stored counterparty, read as a pattern,
// matches p's name (see package match). A nil or empty Party yields the
// total balance.
func (a *Account) BalanceWith(p Party) decimal.Decimal {
	name := PartyName(p)
	if name == "" {
		return a.Balance()
	}
	total := decimal.Zero
	for _, pos := range a.positions {
		if match.Matches(pos.Counterparty, name) {
			total = total.Add(pos.Amount)
		}
	}
	return RoundCents(total)
}

// Breakdown groups positions by their exact counterparty string, in order of
// first appearance.
func (a *Account) Breakdown() []CounterpartyBalance {
	var out []CounterpartyBalance
	index := make(map[string]int)
	for _, p := range a.positions {
		i, ok := index[p.Counterparty]
		if !ok {
			i = len(out)
			index[p.Counterparty] = i
			out = append(out, CounterpartyBalance{Counterparty: p.Counterparty, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(p.Amount)
		out[i].Positions++
	}
	for i := range out {
		out[i].Amount = RoundCents(out[i].Amount)
	}
	return out
}

func (a *Account) append(p model.Position) {
	a.positions = append(a.positions, p)
}

// RoundCents rounds to two decimal places, half to even.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
