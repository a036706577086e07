package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersionInfo(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate, origRoot := version, commit, date, rootCmd.Version
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
		rootCmd.Version = origRoot
	})
	SetVersionInfo(v, c, d)
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
		{"dev", "dev"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expect, formatVersion(tt.input))
		})
	}
}

func TestSetVersionInfo(t *testing.T) {
	withVersionInfo(t, "1.2.3", "abc1234", "2026-10-14T12:00:00Z")

	assert.Equal(t, "1.2.3", GetVersion())
	assert.Equal(t, "v1.2.3 (abc1234)", rootCmd.Version)
}

func TestVersionCommand(t *testing.T) {
	withVersionInfo(t, "1.2.3", "abc1234", "2026-10-14T12:00:00Z")
	origShort := versionShort
	t.Cleanup(func() { versionShort = origShort })

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionShort = false
	versionCmd.Run(versionCmd, nil)
	out := buf.String()
	assert.Contains(t, out, "slability")
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "commit: abc1234")
	assert.Contains(t, out, "built: 2026-10-14T12:00:00Z")
	assert.Contains(t, out, "go: "+runtime.Version())

	buf.Reset()
	versionShort = true
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "1.2.3\n", buf.String())
}

func TestVersionBanner(t *testing.T) {
	banner := versionBanner("v1.2.3")
	lines := strings.Split(banner, "\n")

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "slability")
	assert.Contains(t, lines[0], "v1.2.3")
	assert.Contains(t, lines[1], "━")
}
