package ledger

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/id"
	"github.com/owed-dev/owed/internal/model"
)

// AddPosition books amount against cp on account a.
//
// When cp is ByAccount, the counterparty receives the offsetting position
// (same memo and reference, negated amount) so the pair sums to zero. When
// cp is ByName only a's side is recorded. Nothing is booked on error.
func AddPosition(a *Account, cp Party, amount decimal.Decimal, memo string) error {
	const op = "add position"
	if a == nil {
		return invalid(op, "account must not be nil")
	}
	if err := checkParty(op, cp); err != nil {
		return err
	}

	p := model.Position{
		Counterparty: cp.partyName(),
		Amount:       amount,
		Memo:         memo,
		Ref:          id.NewRef(),
	}
	a.append(p)

	other := cp.account()
	if other != nil {
		other.append(p.Mirror(a.name))
	}
	slog.Debug("position added", "account", a.name, "counterparty", p.Counterparty,
		"amount", amount.String(), "mirrored", other != nil, "ref", id.ShortRef(p.Ref))
	return nil
}

// RecordPayment records that payer paid amount to payee. An empty memo
// defaults to model.DefaultPaymentMemo.
func RecordPayment(payer *Account, payee Party, amount decimal.Decimal, memo string) error {
	if memo == "" {
		memo = model.DefaultPaymentMemo
	}
	return AddPosition(payer, payee, amount, memo)
}
