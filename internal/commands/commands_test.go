package commands_test

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/owed-dev/owed/internal/commands"
)

func runOwed(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// newWorkspace initializes a workspace without a display currency so amounts
// print as plain decimals.
func newWorkspace(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	args := append([]string{"init", dir, "--currency="}, extra...)
	_, err := runOwed(t, args...)
	require.NoError(t, err)
	return dir
}

// mustRun runs a command against the workspace in dir and fails on error.
func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runOwed(t, append([]string{"--dir", dir}, args...)...)
	require.NoError(t, err, out)
	return out
}

func runIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	return runOwed(t, append([]string{"--dir", dir}, args...)...)
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}
