package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/importer"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Apply CSV files from the import directory",
		Long: `Apply every CSV file in <workspace>/import to the ledger.

Each file has the header kind,from,to,amount,memo where kind is payment,
split or position. Split debtors are separated by ';'. Nothing is saved
unless every row of every file applies and every file could be moved to
import/processed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				files, err := importer.Scan(s.dir)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(files) == 0 {
					fmt.Fprintln(out, "No files to import")
					return nil
				}

				var total importer.Result
				for _, file := range files {
					instrs, err := importer.ParseFile(file.Path)
					if err != nil {
						return err
					}
					res, err := importer.Apply(s.reg, instrs, s.cfg.SingleDebtorMode())
					if err != nil {
						return fmt.Errorf("%s: %w", file.Name, err)
					}
					slog.Debug("applied import file", "file", file.Name, "instructions", res.Total())
					fmt.Fprintf(out, "%s: %d payments, %d splits, %d positions\n", file.Name, res.Payments, res.Splits, res.Positions)
					total.Payments += res.Payments
					total.Splits += res.Splits
					total.Positions += res.Positions
				}

				if dryRun {
					fmt.Fprintf(out, "Dry run: %d instructions not saved\n", total.Total())
					return nil
				}

				// Files move first so a file is never left in import/ after
				// its rows were saved. Any failure moves them back.
				var moved []string
				for _, file := range files {
					if err := importer.MarkProcessed(s.dir, file.Name); err != nil {
						return errors.Join(err, restoreImports(s.dir, moved))
					}
					moved = append(moved, file.Name)
				}
				if err := s.reg.PersistAll(); err != nil {
					return errors.Join(err, restoreImports(s.dir, moved))
				}
				if err := s.commit(fmt.Sprintf("import: %d files, %d instructions", len(files), total.Total())); err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported %d instructions from %d files\n", total.Total(), len(files))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "apply in memory and report without saving")

	return cmd
}

func restoreImports(workspace string, names []string) error {
	var errs []error
	for _, name := range names {
		if err := importer.Restore(workspace, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
