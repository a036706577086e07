package cli

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/slability/internal/config"
	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/rileyhilliard/slability/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initForce          bool
	initNonInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .slability.yaml configuration",
	Long: `Create a .slability.yaml file in the current directory.

On a terminal you are prompted for endpoints and timings. Otherwise, or with
--non-interactive, the -a/-t/-i flags are written as given.

Examples:
  slability init
  slability init --non-interactive -a web=example.com:443 -a 10.0.0.5:22
  slability init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Addresses:      addressFlags,
			TimeoutMS:      timeoutFlag,
			IntervalMS:     intervalFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive || !stdinIsTerminal(),
		})
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use flag values")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Addresses      []string // host:port or label=host:port specs
	TimeoutMS      int
	IntervalMS     int
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use the values above
}

// Init creates a new .slability.yaml configuration file.
func Init(out io.Writer, opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)
	overwrite := opts.Overwrite

	if _, err := os.Stat(configPath); err == nil && !overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if !opts.NonInteractive {
		if err := promptInit(&opts); err != nil {
			return err
		}
	}

	cfg, err := buildInitConfig(opts)
	if err != nil {
		return err
	}

	if err := config.Save(configPath, cfg, overwrite); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s with %d endpoint(s)\n", ui.SymbolSuccess, configPath, len(cfg.Targets))
	fmt.Fprintln(out, "  Run 'slability' to start the dashboard.")
	return nil
}

// buildInitConfig turns options into a validated config. Nothing is resolved
// here so a config can be written for hosts that are down right now.
func buildInitConfig(opts InitOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.TimeoutMS != 0 {
		cfg.TimeoutMS = opts.TimeoutMS
	}
	if opts.IntervalMS != 0 {
		cfg.IntervalMS = opts.IntervalMS
	}

	for _, spec := range splitList(opts.Addresses) {
		ep, err := config.ParseEndpointSpec(spec)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, ep)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// promptInit fills opts from an interactive form, using the current values
// as defaults.
func promptInit(opts *InitOptions) error {
	addresses := strings.Join(opts.Addresses, ", ")
	timeout := strconv.Itoa(orDefault(opts.TimeoutMS, config.DefaultTimeoutMS))
	interval := strconv.Itoa(orDefault(opts.IntervalMS, config.DefaultIntervalMS))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoints").
				Description("Comma-separated host:port, optionally label=host:port").
				Placeholder("web=example.com:443, 10.0.0.5:22").
				Value(&addresses).
				Validate(validateSpecList),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Connect timeout (ms)").
				Value(&timeout).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Probe interval (ms)").
				Value(&interval).
				Validate(validatePositiveInt),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	opts.Addresses = splitList([]string{addresses})
	opts.TimeoutMS, _ = strconv.Atoi(strings.TrimSpace(timeout))
	opts.IntervalMS, _ = strconv.Atoi(strings.TrimSpace(interval))
	return nil
}

func validateSpecList(s string) error {
	specs := splitList([]string{s})
	if len(specs) == 0 {
		return fmt.Errorf("at least one endpoint is required")
	}
	for _, spec := range specs {
		ep, err := config.ParseEndpointSpec(spec)
		if err != nil {
			return fmt.Errorf("'%s' is not host:port or label=host:port", spec)
		}
		if _, _, err := net.SplitHostPort(ep.Address); err != nil {
			return fmt.Errorf("'%s' is missing a port", ep.Address)
		}
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number of milliseconds greater than 0")
	}
	return nil
}

// splitList flattens comma-separated entries and drops blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
