// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the TRIPLE_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*Config, string)
}

// envOverrides is the declarative table of all environment variable overrides,
// grouped as numeric, duration, string, and boolean entries.
var envOverrides = []envOverride{
	// Numeric overrides
	{"K", []string{"k"}, func(c *Config, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.K = parsed
		}
	}},
	{"N", []string{"n"}, func(c *Config, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Offset = parsed
		}
	}},
	{"ABOUND", []string{"abound"}, func(c *Config, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.ABound = parsed
		}
	}},
	{"BBOUND", []string{"bbound"}, func(c *Config, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.BBound = parsed
		}
	}},
	{"CBOUND", []string{"cbound"}, func(c *Config, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.CBound = parsed
		}
	}},
	{"GROUPS", []string{"groups"}, func(c *Config, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Groups = parsed
		}
	}},
	{"WORKERS", []string{"workers"}, func(c *Config, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.WorkersPerGroup = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *Config, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"STRATEGY", []string{"strategy"}, func(c *Config, v string) {
		c.Strategy = v
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *Config, v string) {
		c.OutputFile = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *Config, v string) {
		c.MetricsAddr = v
	}},

	// Boolean overrides
	{"DISTINCT", []string{"distinct"}, func(c *Config, v string) {
		c.Distinct = parseBoolEnv(v, c.Distinct)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *Config, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *Config, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *Config, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
	{"VERIFY", []string{"verify"}, func(c *Config, v string) {
		c.Verify = parseBoolEnv(v, c.Verify)
	}},
	{"TUI", []string{"tui"}, func(c *Config, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with TRIPLE_):
//   - K, N, ABOUND, BBOUND, CBOUND, GROUPS, WORKERS, TIMEOUT, STRATEGY,
//     OUTPUT, METRICS_ADDR, DISTINCT, QUIET, VERBOSE, NO_COLOR, VERIFY, TUI
func applyEnvOverrides(config *Config, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
