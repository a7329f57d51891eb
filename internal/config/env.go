package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MINDCMD_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetting binds one environment variable to a field.
type envSetting struct {
	name string
	set  func(c *Config, value string) error
}

// envSettings lists the supported overrides. Names omit EnvPrefix.
var envSettings = []envSetting{
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"LOG_DEVELOPMENT", boolSetting(func(c *Config) *bool { return &c.Log.Development })},
	{"LOG_FILE", func(c *Config, v string) error { c.Log.File = v; return nil }},
	{"DISPATCHER_PANIC_STACKS", boolSetting(func(c *Config) *bool { return &c.Dispatcher.PanicStacks })},
	{"DISPATCHER_MAX_COUNT", intSetting(func(c *Config) *int { return &c.Dispatcher.MaxCount })},
	{"DISPATCHER_MAX_SUGGESTIONS", intSetting(func(c *Config) *int { return &c.Dispatcher.MaxSuggestions })},
	{"DISPATCHER_METRICS", boolSetting(func(c *Config) *bool { return &c.Dispatcher.Metrics })},
	{"PLUGINS_DIR", func(c *Config, v string) error { c.Plugins.Dir = v; return nil }},
	{"PLUGINS_ENABLED", boolSetting(func(c *Config) *bool { return &c.Plugins.Enabled })},
	{"HISTORY_PATH", func(c *Config, v string) error { c.History.Path = v; return nil }},
	{"HISTORY_ENABLED", boolSetting(func(c *Config) *bool { return &c.History.Enabled })},
	{"HISTORY_LIMIT", intSetting(func(c *Config) *int { return &c.History.Limit })},
}

// ApplyEnv overrides cfg with MINDCMD_* variables found by lookup.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for _, s := range envSettings {
		value, ok := lookup(EnvPrefix + s.name)
		if !ok {
			continue
		}
		if err := s.set(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, s.name, err)
		}
	}
	return nil
}

// EnvNames returns the names of all supported environment variables.
func EnvNames() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

func boolSetting(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func intSetting(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		*field(c) = n
		return nil
	}
}

// parseBool accepts true/false, yes/no, on/off and 1/0.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", s)
	}
}
