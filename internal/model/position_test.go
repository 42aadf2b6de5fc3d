package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPositionMirror(t *testing.T) {
	p := Position{Counterparty: "Bob", Amount: decimal.RequireFromString("12.50"), Memo: "pizza", Ref: "r1"}
	m := p.Mirror("Alice")

	assert.Equal(t, "Alice", m.Counterparty)
	assert.True(t, m.Amount.Equal(decimal.RequireFromString("-12.50")))
	assert.Equal(t, "pizza", m.Memo)
	assert.Equal(t, "r1", m.Ref)
	assert.True(t, p.Amount.Add(m.Amount).IsZero(), "legs must offset")
}

func TestPositionEqual(t *testing.T) {
	a := Position{Counterparty: "Bob", Amount: decimal.RequireFromString("10.00")}
	b := Position{Counterparty: "Bob", Amount: decimal.RequireFromString("10")}
	assert.True(t, a.Equal(b))

	b.Memo = "different"
	assert.False(t, a.Equal(b))
}
