package config

import (
	"fmt"
	"maps"

	"github.com/dshills/mindcmd/internal/input/keyseq"
	"github.com/dshills/mindcmd/internal/logging"
)

// Config is the complete mindcmd configuration.
type Config struct {
	Log        LogConfig         `toml:"log" yaml:"log"`
	Dispatcher DispatcherConfig  `toml:"dispatcher" yaml:"dispatcher"`
	Keys       map[string]string `toml:"keys" yaml:"keys"`
	Aliases    map[string]string `toml:"aliases" yaml:"aliases"`
	Plugins    PluginsConfig     `toml:"plugins" yaml:"plugins"`
	History    HistoryConfig     `toml:"history" yaml:"history"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level       string `toml:"level" yaml:"level"`
	Development bool   `toml:"development" yaml:"development"`
	File        string `toml:"file" yaml:"file"`
}

// DispatcherConfig configures command dispatch.
type DispatcherConfig struct {
	PanicStacks    bool `toml:"panic_stacks" yaml:"panic_stacks"`
	MaxCount       int  `toml:"max_count" yaml:"max_count"`
	MaxSuggestions int  `toml:"max_suggestions" yaml:"max_suggestions"`
	Metrics        bool `toml:"metrics" yaml:"metrics"`
}

// PluginsConfig configures Lua script commands.
type PluginsConfig struct {
	Dir     string `toml:"dir" yaml:"dir"`
	Enabled bool   `toml:"enabled" yaml:"enabled"`
}

// HistoryConfig configures the command history store.
type HistoryConfig struct {
	Path    string `toml:"path" yaml:"path"`
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Limit   int    `toml:"limit" yaml:"limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Dispatcher: DispatcherConfig{
			PanicStacks:    true,
			MaxCount:       10000,
			MaxSuggestions: 3,
		},
		Keys:    map[string]string{},
		Aliases: map[string]string{},
		Plugins: PluginsConfig{
			Enabled: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   1000,
		},
	}
}

// KeyBindings returns the default bindings merged with the [keys] section.
// An empty command line removes a default binding.
func (c *Config) KeyBindings() map[string]string {
	out := maps.Clone(keyseq.DefaultBindings)
	for pattern, line := range c.Keys {
		if line == "" {
			delete(out, pattern)
			continue
		}
		out[pattern] = line
	}
	return out
}

// KeyTable builds the key-binding table.
func (c *Config) KeyTable() (*keyseq.Table, error) {
	return keyseq.NewTable(c.KeyBindings())
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	if c.Dispatcher.MaxCount < 0 {
		return fmt.Errorf("%w: dispatcher.max_count must not be negative", ErrInvalid)
	}
	if c.Dispatcher.MaxSuggestions < 0 {
		return fmt.Errorf("%w: dispatcher.max_suggestions must not be negative", ErrInvalid)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("%w: history.limit must not be negative", ErrInvalid)
	}
	for alias, name := range c.Aliases {
		if alias == "" || name == "" {
			return fmt.Errorf("%w: aliases: empty alias or command name", ErrInvalid)
		}
	}
	if _, err := c.KeyTable(); err != nil {
		return fmt.Errorf("%w: keys: %v", ErrInvalid, err)
	}
	return nil
}
