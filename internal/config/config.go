package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/owed-dev/owed/internal/ledger"
	"github.com/owed-dev/owed/internal/store"
)

// FileName is the config file name inside a workspace.
const FileName = "owed.yaml"

// Config represents the top-level owed.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Display DisplayConfig `yaml:"display"`
	Git     GitConfig     `yaml:"git"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where person records live.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "json" or "sqlite"
	Path    string `yaml:"path"`    // relative to the workspace
}

// LedgerConfig chooses between current and legacy ledger behavior.
type LedgerConfig struct {
	// LoadExisting is the default for creating a person without an explicit
	// load choice when using the ledger as a library. The CLI always loads
	// every stored record at startup, so it is not affected by this setting.
	LoadExisting      bool   `yaml:"load_existing"`
	MissingRecord     string `yaml:"missing_record"`      // "tolerate" or "propagate"
	SingleDebtorSplit string `yaml:"single_debtor_split"` // "half" or "full"
}

// DisplayConfig controls how amounts are printed.
type DisplayConfig struct {
	Currency string `yaml:"currency"` // ISO 4217 code, display only
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads an owed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadWorkspace reads <dir>/owed.yaml, falling back to defaults when the file does not exist.
func LoadWorkspace(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the recommended settings for a new workspace.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: store.BackendJSON,
			Path:    "data",
		},
		Ledger: LedgerConfig{
			LoadExisting:      true,
			MissingRecord:     string(ledger.MissingTolerate),
			SingleDebtorSplit: string(ledger.SingleDebtorHalf),
		},
		Display: DisplayConfig{
			Currency: "EUR",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "owed",
			AuthorEmail: "owed@localhost",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case store.BackendJSON, store.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend %q: want %q or %q", c.Storage.Backend, store.BackendJSON, store.BackendSQLite)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path must not be empty")
	}
	if _, err := ledger.ParseMissingRecordPolicy(c.Ledger.MissingRecord); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if _, err := ledger.ParseSingleDebtorMode(c.Ledger.SingleDebtorSplit); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// LedgerOptions converts the ledger section into registry options.
func (c *Config) LedgerOptions() ledger.Options {
	policy, _ := ledger.ParseMissingRecordPolicy(c.Ledger.MissingRecord)
	return ledger.Options{LoadExisting: c.Ledger.LoadExisting, MissingRecord: policy}
}

// SingleDebtorMode returns the configured split mode for one debtor.
func (c *Config) SingleDebtorMode() ledger.SingleDebtorMode {
	mode, _ := ledger.ParseSingleDebtorMode(c.Ledger.SingleDebtorSplit)
	return mode
}

// StoragePath resolves storage.path against the workspace directory.
func (c *Config) StoragePath(workspace string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(workspace, c.Storage.Path)
}

// SlogLevel parses log.level. Empty means info.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
