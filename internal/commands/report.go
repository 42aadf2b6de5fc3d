package commands

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/report"
)

const (
	formatMarkdown = "markdown"
	formatCSV      = "csv"
)

func newReportCommand(opts *globalOptions) *cobra.Command {
	var format string
	var render bool
	var style string
	var width int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print balances for everyone in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				out := cmd.OutOrStdout()
				switch format {
				case formatCSV:
					return report.WriteCSV(out, s.reg)
				case formatMarkdown:
					return writeMarkdownReport(out, s, render, style, width)
				default:
					return fmt.Errorf("unknown format %q: want %q or %q", format, formatMarkdown, formatCSV)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatMarkdown, "output format (markdown or csv)")
	cmd.Flags().BoolVar(&render, "render", false, "style the markdown for the terminal")
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style used with --render")
	cmd.Flags().IntVar(&width, "width", 80, "word wrap width used with --render (0 disables)")

	return cmd
}

func writeMarkdownReport(w io.Writer, s *session, render bool, style string, width int) error {
	summary := report.Build(s.reg)
	if !render {
		return report.WriteMarkdown(w, summary, s.formatter())
	}

	var buf bytes.Buffer
	if err := report.WriteMarkdown(&buf, summary, s.formatter()); err != nil {
		return err
	}
	styled, err := report.Render(buf.String(), style, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, styled)
	return err
}
