// Package gitops commits workspace changes so every ledger mutation is
// recorded in git history.
package gitops

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if out, err := git(dir, "init"); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	slog.Debug("git repository initialized", "dir", dir)
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// HasChanges reports whether the working tree has anything to commit.
func HasChanges(dir string) (bool, error) {
	out, err := git(dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status: %s: %w", out, err)
	}
	return strings.TrimSpace(out) != "", nil
}

// CommitAll stages all files and creates a commit. Returns the short commit
// hash, or "" when there was nothing to commit.
func CommitAll(dir, message string, author Author) (string, error) {
	changed, err := HasChanges(dir)
	if err != nil {
		return "", err
	}
	if !changed {
		slog.Debug("nothing to commit", "dir", dir)
		return "", nil
	}

	if out, err := git(dir, "add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	// Identity via -c so commits work without a global git config.
	if out, err := git(dir,
		"-c", "user.name="+author.Name,
		"-c", "user.email="+author.Email,
		"commit", "-m", message, "--author", author.String(),
	); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	out, err := git(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	hash := strings.TrimSpace(out)
	slog.Debug("committed", "dir", dir, "hash", hash, "message", message)
	return hash, nil
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
