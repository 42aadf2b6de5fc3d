package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/buildinfo"
	"github.com/owed-dev/owed/internal/config"
)

// globalOptions holds the persistent flags shared by all subcommands.
type globalOptions struct {
	dir     string
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "owed",
		Short:   "Track who owes whom",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, opts)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", ".", "workspace directory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newPersonCommand(opts),
		newAddCommand(opts),
		newPayCommand(opts),
		newSplitCommand(opts),
		newBalanceCommand(opts),
		newReportCommand(opts),
		newImportCommand(opts),
		newCheckCommand(opts),
	)

	return rootCmd
}

// setupLogging installs a text slog handler on the command's stderr. The
// level comes from --verbose, else from log.level in the workspace config.
func setupLogging(cmd *cobra.Command, opts *globalOptions) {
	level := slog.LevelInfo
	if cfg, err := config.LoadWorkspace(opts.dir); err == nil {
		if lvl, err := cfg.SlogLevel(); err == nil {
			level = lvl
		}
	}
	if opts.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
