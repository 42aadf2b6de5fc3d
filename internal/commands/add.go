package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/ledger"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	var memo string
	var oneSided bool

	cmd := &cobra.Command{
		Use:   "add <person> <counterparty> <amount>",
		Short: "Record that counterparty owes person amount (negative: person owes)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			return withSession(opts, func(s *session) error {
				a, err := s.reg.Resolve(args[0])
				if err != nil {
					return err
				}
				cp := ledger.ByName(args[1])
				if !oneSided {
					if cp, err = s.reg.ResolveParty(args[1]); err != nil {
						return err
					}
				}
				if err := ledger.AddPosition(a, cp, amount, memo); err != nil {
					return err
				}
				f := s.formatter()
				msg := fmt.Sprintf("add: %s %s %s", a.Name(), ledger.PartyName(cp), f.Signed(amount))
				if err := s.save(msg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s with %s\n", a.Name(), f.Signed(amount), ledger.PartyName(cp))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&memo, "memo", "m", "", "description of the position")
	cmd.Flags().BoolVar(&oneSided, "one-sided", false, "do not mirror the position onto the counterparty")

	return cmd
}
