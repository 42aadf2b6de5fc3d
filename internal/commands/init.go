package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/owed-dev/owed/internal/config"
	"github.com/owed-dev/owed/internal/gitops"
	"github.com/owed-dev/owed/internal/importer"
	"github.com/owed-dev/owed/internal/store"
)

func newInitCommand() *cobra.Command {
	var backend string
	var withGit bool
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new owed workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, initParams{
				Backend:  backend,
				Git:      withGit,
				Currency: currency,
			})
		},
	}

	cmd.Flags().StringVar(&backend, "backend", store.BackendJSON, "storage backend (json or sqlite)")
	cmd.Flags().BoolVar(&withGit, "git", false, "initialize a git repository and commit every change")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "currency code used when printing amounts")

	return cmd
}

type initParams struct {
	Backend  string
	Git      bool
	Currency string
}

func runInit(out io.Writer, dir string, p initParams) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Storage.Backend = p.Backend
	if p.Backend == store.BackendSQLite {
		cfg.Storage.Path = "owed.db"
	}
	cfg.Display.Currency = p.Currency
	cfg.Git.AutoCommit = p.Git
	if err := cfg.Validate(); err != nil {
		return err
	}

	dirs := []string{importer.Dir(dir), importer.ProcessedDir(dir)}
	if p.Backend != store.BackendSQLite {
		dirs = append(dirs, cfg.StoragePath(dir))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(importer.Dir(dir), ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !p.Git {
		fmt.Fprintf(out, "Initialized owed workspace at %s\n", dir)
		return nil
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(dir, "init: owed workspace", author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized owed workspace at %s (%s)\n", dir, hash)
	return nil
}
