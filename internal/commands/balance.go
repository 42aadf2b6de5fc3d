package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/ledger"
)

func newBalanceCommand(opts *globalOptions) *cobra.Command {
	var breakdown bool

	cmd := &cobra.Command{
		Use:   "balance <person> [counterparty]",
		Short: "Show a person's net balance, optionally with one counterparty",
		Long: `Show a person's net balance. Positive means others owe the person.

With a counterparty, only positions whose recorded counterparty matches
the start of that name count, ignoring case: positions against "Bob" count
toward "Bobby". A counterparty that names one registered person resolves
to that person first.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				a, err := s.reg.Resolve(args[0])
				if err != nil {
					return err
				}
				f := s.formatter()
				out := cmd.OutOrStdout()

				if len(args) == 2 {
					cp, err := s.reg.ResolveParty(args[1])
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s with %s: %s\n", a.Name(), ledger.PartyName(cp), f.Signed(a.BalanceWith(cp)))
					return nil
				}

				fmt.Fprintf(out, "%s: %s\n", a.Name(), f.Signed(a.Balance()))
				if breakdown {
					for _, line := range a.Breakdown() {
						fmt.Fprintf(out, "  %s: %s\n", line.Counterparty, f.Signed(line.Amount))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&breakdown, "breakdown", "b", false, "list the balance per counterparty")

	return cmd
}
