package ledger

import "strings"

// Party names the other side of a position: either a bare name, which
// records a one-sided entry, or a live Account, which also receives the
// offsetting entry.
type Party interface {
	partyName() string
	account() *Account
}

type byName string

func (n byName) partyName() string { return string(n) }
func (n byName) account() *Account { return nil }

type byAccount struct{ a *Account }

func (b byAccount) partyName() string {
	if b.a == nil {
		return ""
	}
	return b.a.name
}
func (b byAccount) account() *Account { return b.a }

// ByName refers to a counterparty by name only.
func ByName(name string) Party { return byName(name) }

// ByAccount refers to a live Account.
func ByAccount(a *Account) Party { return byAccount{a: a} }

// PartyName returns the name a Party refers to, or "" for nil.
func PartyName(p Party) string {
	if p == nil {
		return ""
	}
	return p.partyName()
}

func checkParty(op string, p Party) error {
	switch v := p.(type) {
	case nil:
		return invalid(op, "counterparty must be a name or an account")
	case byName:
		if strings.TrimSpace(string(v)) == "" {
			return invalid(op, "counterparty name must not be empty")
		}
	case byAccount:
		if v.a == nil {
			return invalid(op, "counterparty account must not be nil")
		}
	}
	return nil
}

// Debtors is the set of people a bill is split with: one Account or a list.
type Debtors interface {
	accounts() []*Account
	single() bool
}

type singleDebtor struct{ a *Account }

func (s singleDebtor) accounts() []*Account { return []*Account{s.a} }
func (s singleDebtor) single() bool         { return true }

type manyDebtors []*Account

func (m manyDebtors) accounts() []*Account { return m }
func (m manyDebtors) single() bool         { return false }

// Single splits a bill in half with one debtor.
func Single(a *Account) Debtors { return singleDebtor{a: a} }

// Many splits a bill among the creditor and every listed debtor.
func Many(accounts ...*Account) Debtors { return manyDebtors(accounts) }
