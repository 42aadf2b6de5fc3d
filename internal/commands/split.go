package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/ledger"
)

func newSplitCommand(opts *globalOptions) *cobra.Command {
	var amountStr string
	var memo string
	var asList bool

	cmd := &cobra.Command{
		Use:   "split <creditor> <debtor>...",
		Short: "Split a bill paid by creditor equally with the debtors",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			return withSession(opts, func(s *session) error {
				creditor, err := s.reg.Resolve(args[0])
				if err != nil {
					return err
				}
				var debtors []*ledger.Account
				for _, name := range args[1:] {
					a, err := s.reg.Resolve(name)
					if err != nil {
						return err
					}
					debtors = append(debtors, a)
				}

				params := ledger.SplitParams{
					Creditor:     creditor,
					Debtors:      ledger.Many(debtors...),
					Total:        total,
					Memo:         memo,
					SingleDebtor: s.cfg.SingleDebtorMode(),
				}
				if len(debtors) == 1 && !asList {
					params.Debtors = ledger.Single(debtors[0])
				}

				res, err := ledger.SplitBill(params)
				if err != nil {
					return err
				}
				f := s.formatter()
				if err := s.save(fmt.Sprintf("split: %s %s %q", creditor.Name(), f.Format(total), memo)); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s split %s %d ways\n", creditor.Name(), f.Format(total), res.Sharers)
				for _, d := range debtors {
					fmt.Fprintf(out, "  %s owes %s\n", d.Name(), f.Format(res.Booked))
				}
				if !res.Residual.IsZero() {
					fmt.Fprintf(out, "  %s left with %s\n", creditor.Name(), f.Signed(res.Residual))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "bill total (required)")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "bill description (required)")
	cmd.Flags().BoolVar(&asList, "as-list", false, "book a single debtor as a list of one, ignoring ledger.single_debtor_split")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("memo")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if memo == "" {
			return errors.New("--memo must not be empty")
		}
		return nil
	}

	return cmd
}
