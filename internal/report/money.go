package report

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter prints amounts in one display currency. The ledger itself is
// currency-less; the currency only affects presentation.
type Formatter struct {
	code string
	cur  *money.Currency // nil for codes go-money does not know
}

// NewFormatter returns a Formatter for an ISO 4217 code such as "EUR".
func NewFormatter(code string) Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	f := Formatter{code: code}
	if code != "" && money.GetCurrency(code) != nil {
		// money.New yields the registered *Currency for code.
		f.cur = money.New(0, code).Currency()
	}
	return f
}

// Format renders d rounded to the currency's minor unit, e.g. "-€12.50".
func (f Formatter) Format(d decimal.Decimal) string {
	if f.cur == nil {
		s := d.StringFixed(2)
		if f.code != "" {
			s += " " + f.code
		}
		return s
	}
	minor := d.Shift(int32(f.cur.Fraction)).RoundBank(0).IntPart()
	return f.cur.Formatter().Format(minor)
}

// Signed is like Format but prefixes positive amounts with "+".
func (f Formatter) Signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + f.Format(d)
	}
	return f.Format(d)
}
