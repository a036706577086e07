package cli

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/rileyhilliard/slability/internal/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with an empty home so no
// real config file is found.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return dir
}

// newEndpointCmd builds a bare command carrying the endpoint flags, parsed
// from args.
func newEndpointCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerEndpointFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"status", "init", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "address", shorthand: "a", defValue: "[]"},
		{name: "timeout", shorthand: "t", defValue: "1000"},
		{name: "interval", shorthand: "i", defValue: "5000"},
		{name: "config", defValue: ""},
		{name: "no-color", defValue: "false"},
		{name: "verbose", shorthand: "v", defValue: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := rootCmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestDashboard_RequiresTerminal(t *testing.T) {
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	err := dashboardCommand(&cobra.Command{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
	assert.Contains(t, err.Error(), "slability status")
}

func TestLoadEndpoints_FromFlags(t *testing.T) {
	isolate(t)

	cmd := newEndpointCmd(t, "-a", "web=127.0.0.1:8080", "-a", "127.0.0.1:9090", "-t", "250")
	endpoints, err := loadEndpoints(cmd)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	assert.Equal(t, "web", endpoints[0].Label)
	assert.Equal(t, "127.0.0.1:8080", endpoints[0].Address)
	assert.Equal(t, 250*time.Millisecond, endpoints[0].Timeout)
	assert.Equal(t, 5*time.Second, endpoints[0].Interval)
	assert.Equal(t, "127.0.0.1:9090", endpoints[1].Name())
}

func TestLoadEndpoints_NothingConfigured(t *testing.T) {
	isolate(t)

	_, err := loadEndpoints(newEndpointCmd(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Nothing to monitor")
}

func TestRedirectLogs_DiscardsWithoutDebug(t *testing.T) {
	t.Setenv(logger.DebugEnv, "")
	logger.SetVerbose(false)

	restore, err := redirectLogs()
	require.NoError(t, err)
	t.Cleanup(restore)

	assert.NotPanics(t, func() { log.Print("dropped") })
}

func TestRedirectLogs_WritesFileWithDebug(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")
	t.Setenv(DebugLogFileEnv, path)
	logger.SetVerbose(true)
	t.Cleanup(func() { logger.SetVerbose(false) })

	restore, err := redirectLogs()
	require.NoError(t, err)

	log.Print("hello from the dashboard")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the dashboard")
	assert.Contains(t, string(data), "slability")
}
