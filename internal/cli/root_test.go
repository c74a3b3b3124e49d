package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/base-14/examples/go/parking-lot/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, config.Init())

	var out, errOut bytes.Buffer
	cmd := NewRootCmd("1.2.3")
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootRunsShellOnStdin(t *testing.T) {
	out, _, err := execute(t, "create 2\npark KA01 Red\nstatus\nexit\n", "--log-level", "disabled")
	require.NoError(t, err)

	assert.Equal(t, "Created a parking lot with 2 spots.\nRed car parked in spot 1.\n1 KA01 Red\n", out)
}

func TestRootReadsCommandFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.txt")
	require.NoError(t, os.WriteFile(path, []byte("create 1\npark KA01 blue\npark KA02 red\n"), 0o644))

	out, _, err := execute(t, "status\n", "--file", path, "--log-level", "disabled")
	require.NoError(t, err)

	assert.Equal(t, "Created a parking lot with 1 spots.\nBlue car parked in spot 1.\nSorry, the parking lot is full.\n", out)
}

func TestRootFailsOnMissingFile(t *testing.T) {
	_, errOut, err := execute(t, "", "--file", filepath.Join(t.TempDir(), "missing.txt"), "--log-level", "disabled")
	require.Error(t, err)
	assert.Contains(t, errOut, "failed to open command file")
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "", "--log-format", "xml")
	assert.ErrorContains(t, err, "invalid log-format")
}

func TestRootWithDiagnosticsServer(t *testing.T) {
	out, _, err := execute(t, "create 1\nexit\n", "--diagnostics-addr", "127.0.0.1:0", "--log-level", "disabled")
	require.NoError(t, err)
	assert.Equal(t, "Created a parking lot with 1 spots.\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "parking-lot version 1.2.3\n", out)
}

func TestConfigCommand(t *testing.T) {
	out, _, err := execute(t, "", "config", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "log-level:          error")
	assert.Contains(t, out, "diagnostics-addr:   (disabled)")
}
