package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[log]
level = "debug"

[dispatcher]
max_count = 500
metrics = true

[keys]
"J" = "down"
"x" = ""

[aliases]
dl = "delete-line"

[history]
limit = 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Dispatcher.MaxCount != 500 || !cfg.Dispatcher.Metrics {
		t.Errorf("Dispatcher = %+v", cfg.Dispatcher)
	}
	// Unset fields keep their defaults.
	if !cfg.Dispatcher.PanicStacks || cfg.Dispatcher.MaxSuggestions != 3 {
		t.Errorf("Dispatcher defaults lost: %+v", cfg.Dispatcher)
	}
	if diff := cmp.Diff(map[string]string{"dl": "delete-line"}, cfg.Aliases); diff != "" {
		t.Errorf("Aliases mismatch (-want +got):\n%s", diff)
	}
	if cfg.History.Limit != 50 || !cfg.History.Enabled {
		t.Errorf("History = %+v", cfg.History)
	}

	table, err := cfg.KeyTable()
	if err != nil {
		t.Fatalf("KeyTable() error = %v", err)
	}
	if line, ok := table.Command("J"); !ok || line != "down" {
		t.Errorf("J -> %q, %v", line, ok)
	}
	if table.Has("x") {
		t.Error("x should be unbound")
	}
	if !table.Has("dd") {
		t.Error("default dd binding missing")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
log:
  level: warn
plugins:
  dir: /tmp/plugins
  enabled: false
keys:
  Q: first
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Plugins.Dir != "/tmp/plugins" || cfg.Plugins.Enabled {
		t.Errorf("Plugins = %+v", cfg.Plugins)
	}
	if cfg.KeyBindings()["Q"] != "first" {
		t.Errorf("KeyBindings()[Q] = %q", cfg.KeyBindings()["Q"])
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want ErrNotExist", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[log]\nverbosity = 3\n")
		_, err := Load(path)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("error = %v, want *ParseError", err)
		}
	})

	t.Run("syntax error has position", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[log\nlevel = 1\n")
		_, err := Load(path)
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Line == 0 {
			t.Errorf("error = %v, want *ParseError with a line", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := writeFile(t, "config.ini", "level=debug\n")
		if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("reserved key pattern", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[keys]\n\"5x\" = \"down\"\n")
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("error = %v, want ErrInvalid", err)
		}
	})

	t.Run("bad level", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[log]\nlevel = \"chatty\"\n")
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("error = %v, want ErrInvalid", err)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MINDCMD_LOG_LEVEL":            "error",
		"MINDCMD_DISPATCHER_MAX_COUNT": "42",
		"MINDCMD_DISPATCHER_METRICS":   "yes",
		"MINDCMD_HISTORY_ENABLED":      "off",
		"MINDCMD_PLUGINS_DIR":          "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	cfg.Plugins.Dir = "/etc/mindcmd"
	if err := ApplyEnv(cfg, lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Log.Level != "error" || cfg.Dispatcher.MaxCount != 42 || !cfg.Dispatcher.Metrics || cfg.History.Enabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Plugins.Dir != "" {
		t.Errorf("empty variable should override, got %q", cfg.Plugins.Dir)
	}

	bad := func(k string) (string, bool) {
		if k == "MINDCMD_HISTORY_LIMIT" {
			return "lots", true
		}
		return "", false
	}
	if err := ApplyEnv(Default(), bad); err == nil {
		t.Error("ApplyEnv() should reject a non-integer limit")
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("MINDCMD_DISPATCHER_MAX_SUGGESTIONS", "5")
	path := writeFile(t, "config.toml", "[dispatcher]\nmax_suggestions = 2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dispatcher.MaxSuggestions != 5 {
		t.Errorf("MaxSuggestions = %d, want env override 5", cfg.Dispatcher.MaxSuggestions)
	}
}
