package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/id"
	"github.com/owed-dev/owed/internal/match"
	"github.com/owed-dev/owed/internal/model"
)

// CheckError describes one broken pair found by Check.
type CheckError struct {
	Ref         string
	Account     string
	Description string
}

func (e CheckError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", id.ShortRef(e.Ref), e.Account, e.Description)
}

type leg struct {
	owner    string
	position model.Position
}

// Check verifies the double-entry pairs across all registered accounts.
//
// Positions sharing a reference form a pair: there must be exactly two legs,
// their amounts must sum to zero, and each leg's counterparty must match the
// owner of the other leg. Positions without a reference, or whose reference
// appears once (one-sided entries), are not checked.
func Check(r *Registry) []CheckError {
	groups := make(map[string][]leg)
	var order []string
	for _, a := range r.Accounts() {
		for _, p := range a.positions {
			if p.Ref == "" {
				continue
			}
			if _, seen := groups[p.Ref]; !seen {
				order = append(order, p.Ref)
			}
			groups[p.Ref] = append(groups[p.Ref], leg{owner: a.name, position: p})
		}
	}

	var errs []CheckError
	for _, ref := range order {
		legs := groups[ref]
		switch {
		case len(legs) == 1:
			continue
		case len(legs) > 2:
			errs = append(errs, CheckError{
				Ref:         ref,
				Account:     legs[0].owner,
				Description: fmt.Sprintf("reference used by %d positions, want at most 2", len(legs)),
			})
			continue
		}

		a, b := legs[0], legs[1]
		if sum := a.position.Amount.Add(b.position.Amount); !sum.Equal(decimal.Zero) {
			errs = append(errs, CheckError{
				Ref:         ref,
				Account:     a.owner,
				Description: fmt.Sprintf("legs do not offset: %s + %s = %s", a.position.Amount, b.position.Amount, sum),
			})
		}
		for _, pair := range [][2]leg{{a, b}, {b, a}} {
			self, other := pair[0], pair[1]
			if !match.Matches(self.position.Counterparty, other.owner) {
				errs = append(errs, CheckError{
					Ref:         ref,
					Account:     self.owner,
					Description: fmt.Sprintf("counterparty %q does not name %q", self.position.Counterparty, other.owner),
				})
			}
		}
	}
	return errs
}
