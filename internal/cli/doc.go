// Package cli implements the slability command-line interface.
//
// # Command Structure
//
// The root command opens the live dashboard. Subcommands cover the
// non-interactive paths:
//
//	slability [-a host:port ...]   - Live reachability dashboard
//	slability status [--json]      - Probe every endpoint once and exit
//	slability init                 - Create .slability.yaml
//	slability version              - Print build information
//	slability completion <shell>   - Generate shell completion scripts
//
// # Flag Handling
//
// Endpoint flags (-a/--address, -t/--timeout, -i/--interval) and global
// flags (--config, --verbose, --no-color) are persistent on the root command
// so every subcommand sees them. They are handed to config.Load as a pflag
// set, which merges them over SLABILITY_* environment variables, the config
// file and defaults.
//
// # Error Handling
//
// Commands return *errors.Error values. Execute prints them and exits 1.
package cli
