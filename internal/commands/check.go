package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/ledger"
)

func newCheckCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every paired position has a matching offset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				problems := ledger.Check(s.reg)
				out := cmd.OutOrStdout()
				if len(problems) == 0 {
					fmt.Fprintf(out, "OK: %d people checked\n", s.reg.Len())
					return nil
				}
				for _, p := range problems {
					fmt.Fprintln(out, p.Error())
				}
				return fmt.Errorf("%d problems found", len(problems))
			})
		},
	}
}
