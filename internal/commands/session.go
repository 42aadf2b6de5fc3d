package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/owed-dev/owed/internal/config"
	"github.com/owed-dev/owed/internal/gitops"
	"github.com/owed-dev/owed/internal/ledger"
	"github.com/owed-dev/owed/internal/report"
	"github.com/owed-dev/owed/internal/store"
)

// session is one command's view of a workspace: config, store and a
// registry with every stored person loaded.
type session struct {
	dir   string
	cfg   *config.Config
	store store.Store
	reg   *ledger.Registry
}

func openSession(dir string) (*session, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadWorkspace(absDir)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.Backend, cfg.StoragePath(absDir))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	reg := ledger.NewRegistry(st, cfg.LedgerOptions())
	if err := reg.LoadAll(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	slog.Debug("session opened", "dir", absDir, "backend", cfg.Storage.Backend, "people", reg.Len())

	return &session{dir: absDir, cfg: cfg, store: st, reg: reg}, nil
}

func (s *session) close() error {
	return s.store.Close()
}

// save persists every person and, when enabled, commits the workspace.
func (s *session) save(message string) error {
	if err := s.reg.PersistAll(); err != nil {
		return err
	}
	return s.commit(message)
}

// commit records the workspace in git when git.auto_commit is set and the
// workspace is a repository.
func (s *session) commit(message string) error {
	if !s.cfg.Git.AutoCommit || !gitops.IsRepo(s.dir) {
		return nil
	}
	author := gitops.Author{Name: s.cfg.Git.AuthorName, Email: s.cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(s.dir, message, author)
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	if hash != "" {
		slog.Info("committed", "hash", hash)
	}
	return nil
}

func (s *session) formatter() report.Formatter {
	return report.NewFormatter(s.cfg.Display.Currency)
}

// withSession opens a session, runs fn, and closes the session.
func withSession(opts *globalOptions, fn func(s *session) error) (err error) {
	s, err := openSession(opts.dir)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close())
	}()
	return fn(s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}
