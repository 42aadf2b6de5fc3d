// Package report summarizes balances for display and exports positions.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/ledger"
)

// PersonSummary is one person's total and per-counterparty breakdown.
type PersonSummary struct {
	Name      string
	Balance   decimal.Decimal
	Positions int
	Lines     []ledger.CounterpartyBalance
}

// Summary covers every registered person, sorted by name.
type Summary struct {
	People []PersonSummary
}

// Build summarizes the registry.
func Build(r *ledger.Registry) Summary {
	var s Summary
	for _, a := range r.Accounts() {
		s.People = append(s.People, PersonSummary{
			Name:      a.Name(),
			Balance:   a.Balance(),
			Positions: a.Len(),
			Lines:     a.Breakdown(),
		})
	}
	return s
}

// WriteMarkdown writes the summary as Markdown tables: one overview, then
// one section per person with positions.
func WriteMarkdown(w io.Writer, s Summary, f Formatter) error {
	var b strings.Builder
	b.WriteString("# Balances\n\n")
	b.WriteString("| Person | Balance |\n")
	b.WriteString("| --- | ---: |\n")
	for _, p := range s.People {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(p.Name), f.Format(p.Balance))
	}

	for _, p := range s.People {
		if len(p.Lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", p.Name)
		b.WriteString("| Counterparty | Positions | Balance |\n")
		b.WriteString("| --- | ---: | ---: |\n")
		for _, l := range p.Lines {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", escapeCell(l.Counterparty), l.Positions, f.Format(l.Amount))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Render styles Markdown for a terminal. style is a glamour standard style
// name ("auto", "dark", "light", "notty"); width <= 0 disables wrapping.
func Render(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
