package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rileyhilliard/slability/internal/config"
	"github.com/rileyhilliard/slability/internal/logger"
	"github.com/rileyhilliard/slability/internal/monitor"
	"github.com/rileyhilliard/slability/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// Endpoint flags. config.Load reads them through the flag set, these
// variables only back the registration.
var (
	addressFlags []string
	timeoutFlag  int
	intervalFlag int
)

// stdoutIsTerminal is swapped out by tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// stdinIsTerminal is swapped out by tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "slability",
	Short: "Live TCP reachability dashboard",
	Long: `slability probes a set of host:port endpoints on a timer and shows, for
each one, whether it is reachable, when that started and how many times it
has come back after being down.

Endpoints come from -a flags, SLABILITY_ADDRESS, or a .slability.yaml file.

Examples:
  slability -a example.com:443
  slability -a web=example.com:443 -a 10.0.0.5:22 -i 2000
  slability --config ./hosts.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		if noColor || !ui.ColorsRequested() {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default: ./.slability.yaml, then ~/.config/slability/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	registerEndpointFlags(flags)
}

// registerEndpointFlags adds -a/--address, -t/--timeout and -i/--interval.
func registerEndpointFlags(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&addressFlags, config.FlagAddress, "a", nil, "endpoint to monitor as host:port or label=host:port (repeatable)")
	flags.IntVarP(&timeoutFlag, config.FlagTimeout, "t", config.DefaultTimeoutMS, "connect timeout in milliseconds")
	flags.IntVarP(&intervalFlag, config.FlagInterval, "i", config.DefaultIntervalMS, "probe interval in milliseconds")
}

// Execute runs the root command and returns the process exit code.
// Cancelling ctx stops monitors and in-flight probes.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// loadEndpoints merges config sources, validates and resolves the result.
func loadEndpoints(cmd *cobra.Command) ([]monitor.Endpoint, error) {
	cfg, path, err := config.Load(config.LoadOptions{
		Path:  cfgFile,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	log := logger.NewEnvLogger("[config]")
	if path != "" {
		log.Debug("loaded %s", path)
	} else {
		log.Debug("no config file, using flags and environment")
	}

	return cfg.Endpoints()
}
