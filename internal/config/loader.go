package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".slability.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/slability"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SLABILITY_TIMEOUT.
	EnvPrefix = "SLABILITY"
)

// Flag names bound into the config. Commands register them; Load reads them.
const (
	FlagAddress  = "address"
	FlagTimeout  = "timeout"
	FlagInterval = "interval"
)

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Path is an explicit config file (--config). Empty means search.
	Path string
	// Flags, when set, override file and environment values.
	Flags *pflag.FlagSet
}

// Load merges defaults, the config file, SLABILITY_* environment variables
// and flags, in increasing precedence. A missing config file is not an error
// unless Path was given explicitly. It returns the config and the file used.
func Load(opts LoadOptions) (*Config, string, error) {
	path, err := Find(opts.Path)
	if err != nil {
		return nil, "", err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML: "+path)
		}
	}

	if opts.Flags != nil {
		for _, name := range []string{FlagTimeout, FlagInterval, FlagAddress} {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, "", errors.WrapWithCode(err, errors.ErrConfig,
						"Failed to bind --"+name,
						"This shouldn't happen - please report this bug")
				}
			}
		}
	}

	cfg, err := parseConfig(v, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .slability.yaml in current directory
// 3. ~/.config/slability/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct, or run 'slability init' to create one")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// setDefaults registers every key so environment overrides are picked up
// by Unmarshal even when no file mentions them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault(FlagTimeout, DefaultTimeoutMS)
	v.SetDefault(FlagInterval, DefaultIntervalMS)
	v.SetDefault(FlagAddress, []string{})
}

// parseConfig converts viper settings to our Config struct.
// Addresses given on the command line or in SLABILITY_ADDRESS replace the
// file's endpoint list.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your settings"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	specs := splitSpecs(v.GetStringSlice(FlagAddress))
	if len(specs) > 0 {
		endpoints := make([]EndpointConfig, 0, len(specs))
		for _, spec := range specs {
			ep, err := ParseEndpointSpec(spec)
			if err != nil {
				return nil, err
			}
			endpoints = append(endpoints, ep)
		}
		cfg.Targets = endpoints
	}

	for i := range cfg.Targets {
		cfg.Targets[i].Label = strings.TrimSpace(cfg.Targets[i].Label)
		cfg.Targets[i].Address = strings.TrimSpace(cfg.Targets[i].Address)
	}

	return cfg, nil
}

// splitSpecs flattens comma-separated values so "-a a:1,b:2" and
// SLABILITY_ADDRESS="a:1,b:2" both yield two specs.
func splitSpecs(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseEndpointSpec parses "host:port" or "label=host:port".
func ParseEndpointSpec(spec string) (EndpointConfig, error) {
	spec = strings.TrimSpace(spec)

	var ep EndpointConfig
	if label, addr, ok := strings.Cut(spec, "="); ok {
		ep.Label = strings.TrimSpace(label)
		ep.Address = strings.TrimSpace(addr)
		if ep.Label == "" {
			return ep, errors.New(errors.ErrConfig,
				"Empty label in '"+spec+"'",
				"Use label=host:port, or drop the '=' to use the address as the name")
		}
	} else {
		ep.Address = spec
	}

	if ep.Address == "" {
		return ep, errors.New(errors.ErrConfig,
			"Missing address in '"+spec+"'",
			"Addresses look like host:port, e.g. example.com:443")
	}
	return ep, nil
}
