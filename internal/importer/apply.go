package importer

import (
	"fmt"
	"log/slog"

	"github.com/owed-dev/owed/internal/ledger"
	"github.com/owed-dev/owed/internal/model"
)

// Result counts what Apply booked.
type Result struct {
	Payments  int
	Splits    int
	Positions int
}

// Total returns the number of applied instructions.
func (r Result) Total() int { return r.Payments + r.Splits + r.Positions }

// Apply books instructions on the registry in order and stops at the first
// failure. Callers discard the registry instead of persisting it when Apply
// fails, so a file is imported entirely or not at all.
//
// The from column must name a registered person. For payments and
// positions, a to name that resolves to nobody is booked one-sided; splits
// require every debtor to be registered.
func Apply(r *ledger.Registry, instrs []model.Instruction, mode ledger.SingleDebtorMode) (Result, error) {
	var res Result
	for _, in := range instrs {
		if err := applyOne(r, in, mode); err != nil {
			return res, fmt.Errorf("row %d: %w", in.Row, err)
		}
		switch in.Kind {
		case model.KindPayment:
			res.Payments++
		case model.KindSplit:
			res.Splits++
		case model.KindPosition:
			res.Positions++
		}
	}
	return res, nil
}

func applyOne(r *ledger.Registry, in model.Instruction, mode ledger.SingleDebtorMode) error {
	from, err := r.Resolve(in.From)
	if err != nil {
		return err
	}

	switch in.Kind {
	case model.KindPayment, model.KindPosition:
		cp, err := r.ResolveParty(in.To[0])
		if err != nil {
			return err
		}
		if in.Kind == model.KindPayment {
			return ledger.RecordPayment(from, cp, in.Amount, in.Memo)
		}
		return ledger.AddPosition(from, cp, in.Amount, in.Memo)

	case model.KindSplit:
		debtors := make([]*ledger.Account, 0, len(in.To))
		for _, name := range in.To {
			d, err := r.Resolve(name)
			if err != nil {
				return err
			}
			debtors = append(debtors, d)
		}
		var ds ledger.Debtors = ledger.Many(debtors...)
		if len(debtors) == 1 {
			ds = ledger.Single(debtors[0])
		}
		res, err := ledger.SplitBill(ledger.SplitParams{
			Creditor:     from,
			Debtors:      ds,
			Total:        in.Amount,
			Memo:         in.Memo,
			SingleDebtor: mode,
		})
		if err != nil {
			return err
		}
		slog.Debug("split imported", "creditor", from.Name(), "per_person", res.PerPerson.String(), "residual", res.Residual.String())
		return nil

	default:
		return fmt.Errorf("unknown kind %q", in.Kind)
	}
}
