package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/ledger"
)

func newPayCommand(opts *globalOptions) *cobra.Command {
	var memo string

	cmd := &cobra.Command{
		Use:   "pay <payer> <payee> <amount>",
		Short: "Record a payment from payer to payee",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			return withSession(opts, func(s *session) error {
				payer, err := s.reg.Resolve(args[0])
				if err != nil {
					return err
				}
				payee, err := s.reg.ResolveParty(args[1])
				if err != nil {
					return err
				}
				if err := ledger.RecordPayment(payer, payee, amount, memo); err != nil {
					return err
				}
				f := s.formatter()
				msg := fmt.Sprintf("pay: %s -> %s %s", payer.Name(), ledger.PartyName(payee), f.Format(amount))
				if err := s.save(msg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s paid %s %s\n", payer.Name(), ledger.PartyName(payee), f.Format(amount))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&memo, "memo", "m", "", "payment description (default \"Payment\")")

	return cmd
}
