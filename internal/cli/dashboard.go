package cli

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/slability/internal/dashboard"
	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/rileyhilliard/slability/internal/logger"
	"github.com/rileyhilliard/slability/internal/monitor"
	"github.com/spf13/cobra"
)

// DebugLogFileEnv overrides where debug output goes while the dashboard owns
// the screen.
const DebugLogFileEnv = "SLABILITY_LOG_FILE"

const defaultDebugLogFile = "slability-debug.log"

// dashboardCommand starts the monitors and runs the TUI until the user quits.
func dashboardCommand(cmd *cobra.Command) error {
	if !stdoutIsTerminal() {
		return errors.New(errors.ErrTerminal,
			"The dashboard needs an interactive terminal",
			"Use 'slability status' for a one-shot report in scripts and pipes")
	}

	endpoints, err := loadEndpoints(cmd)
	if err != nil {
		return err
	}

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	set := monitor.StartAll(ctx, endpoints, monitor.WithLogger(logger.NewEnvLogger("[monitor]")))
	defer set.Stop()

	model := dashboard.New(dashboard.FromSet(set))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Dashboard stopped unexpectedly",
			"Check your terminal supports full-screen programs, or use 'slability status'")
	}
	return nil
}

// redirectLogs keeps log output off the alternate screen. With debug on it
// goes to a file, otherwise it is discarded.
func redirectLogs() (func(), error) {
	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	path := os.Getenv(DebugLogFileEnv)
	if path == "" {
		path = defaultDebugLogFile
	}

	f, err := tea.LogToFile(path, "slability")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't open debug log "+path,
			"Set "+DebugLogFileEnv+" to a writable path")
	}
	return func() {
		_ = f.Close()
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}, nil
}
