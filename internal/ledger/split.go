package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SingleDebtorMode selects what a split with one debtor books.
type SingleDebtorMode string

const (
	// SingleDebtorHalf books half the total against the debtor.
	SingleDebtorHalf SingleDebtorMode = "half"
	// SingleDebtorFull books the whole total against the debtor. Older
	// ledgers were written this way; the debtor ends up owing twice their share.
	SingleDebtorFull SingleDebtorMode = "full"
)

// ParseSingleDebtorMode parses a config value. Empty means half.
func ParseSingleDebtorMode(s string) (SingleDebtorMode, error) {
	switch SingleDebtorMode(s) {
	case "", SingleDebtorHalf:
		return SingleDebtorHalf, nil
	case SingleDebtorFull:
		return SingleDebtorFull, nil
	default:
		return "", fmt.Errorf("single debtor split mode %q: want %q or %q", s, SingleDebtorHalf, SingleDebtorFull)
	}
}

// SplitParams holds parameters for splitting a bill.
type SplitParams struct {
	Creditor     *Account // paid the whole bill
	Debtors      Debtors
	Total        decimal.Decimal
	Memo         string
	SingleDebtor SingleDebtorMode // zero value = half
}

// SplitResult describes how a bill was divided.
type SplitResult struct {
	PerPerson decimal.Decimal // share owed by each debtor
	Booked    decimal.Decimal // amount booked against each debtor
	Sharers   int             // creditor included
	Residual  decimal.Decimal // Total minus the sum of the rounded shares
}

// SplitBill divides Total equally among the creditor and the debtors and
// books one symmetric pair per debtor for their share. Shares are rounded
// to cents; leftover cents stay with the creditor and are reported as
// Residual. All arguments are checked before anything is booked.
func SplitBill(p SplitParams) (SplitResult, error) {
	const op = "split bill"
	if p.Creditor == nil {
		return SplitResult{}, invalid(op, "creditor must not be nil")
	}
	if p.Debtors == nil {
		return SplitResult{}, invalid(op, "debtors must be an account or a list of accounts")
	}
	mode, err := ParseSingleDebtorMode(string(p.SingleDebtor))
	if err != nil {
		return SplitResult{}, invalid(op, "%v", err)
	}

	debtors := p.Debtors.accounts()
	for i, d := range debtors {
		if d == nil {
			return SplitResult{}, invalid(op, "debtor %d must not be nil", i)
		}
	}

	sharers := len(debtors) + 1
	perPerson := RoundCents(p.Total.Div(decimal.NewFromInt(int64(sharers))))
	res := SplitResult{
		PerPerson: perPerson,
		Booked:    perPerson,
		Sharers:   sharers,
		Residual:  p.Total.Sub(perPerson.Mul(decimal.NewFromInt(int64(sharers)))),
	}
	if p.Debtors.single() && mode == SingleDebtorFull {
		res.Booked = p.Total
		res.Residual = decimal.Zero
	}

	for _, d := range debtors {
		if err := AddPosition(p.Creditor, ByAccount(d), res.Booked, p.Memo); err != nil {
			return res, err
		}
	}
	return res, nil
}
