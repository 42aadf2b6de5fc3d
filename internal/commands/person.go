package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/ledger"
)

func newPersonCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage the people tracked in the ledger",
	}
	cmd.AddCommand(
		newPersonAddCommand(opts),
		newPersonListCommand(opts),
	)
	return cmd
}

func newPersonAddCommand(opts *globalOptions) *cobra.Command {
	var balances []string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := parseBalances(balances)
			if err != nil {
				return err
			}
			params := ledger.CreateParams{InitialBalances: initial}

			return withSession(opts, func(s *session) error {
				a, err := s.reg.Create(args[0], params)
				if err != nil {
					return err
				}
				if err := s.save("person: add " + a.Name()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", a.Name(), s.formatter().Signed(a.Balance()))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&balances, "balance", nil, "opening balance as counterparty=amount (repeatable)")

	return cmd
}

// parseBalances parses counterparty=amount pairs. The amount follows the
// last '=' so counterparty names may contain one.
func parseBalances(specs []string) ([]ledger.InitialBalance, error) {
	var out []ledger.InitialBalance
	for _, s := range specs {
		i := strings.LastIndex(s, "=")
		if i <= 0 {
			return nil, fmt.Errorf("balance %q: want counterparty=amount", s)
		}
		amount, err := parseAmount(s[i+1:])
		if err != nil {
			return nil, fmt.Errorf("balance %q: %w", s, err)
		}
		out = append(out, ledger.InitialBalance{Counterparty: s[:i], Amount: amount})
	}
	return out, nil
}

func newPersonListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people with their net balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				f := s.formatter()
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
				for _, a := range s.reg.Accounts() {
					fmt.Fprintf(tw, "%s\t%d\t%s\t\n", a.Name(), a.Len(), f.Signed(a.Balance()))
				}
				return tw.Flush()
			})
		},
	}
}
