package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/config"
	"github.com/dshills/mindcmd/internal/outline"
	"github.com/dshills/mindcmd/internal/registry"
)

// isolate points every per-user path at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("MINDCMD_HISTORY_PATH", filepath.Join(dir, "history.db"))
	t.Setenv("MINDCMD_PLUGINS_DIR", filepath.Join(dir, "plugins"))
	t.Setenv("MINDCMD_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExec(t *testing.T) {
	isolate(t)

	out, err := run(t, "exec", `add "Groceries"`, "add Milk --child", "--show")
	if err != nil {
		t.Fatalf("exec error = %v\n%s", err, out)
	}
	for _, want := range []string{"Added Groceries", "Added Milk", "  Groceries (n2)", ">     Milk (n3)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExecStats(t *testing.T) {
	isolate(t)
	t.Setenv("MINDCMD_DISPATCHER_METRICS", "true")

	out, err := run(t, "exec", `add "Groceries"`, "down", "stats")
	if err != nil {
		t.Fatalf("exec error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 dispatched, 0 failed, 0 panicked") {
		t.Errorf("stats output:\n%s", out)
	}
}

func TestExecFailure(t *testing.T) {
	isolate(t)

	out, err := run(t, "exec", "frobnicate", "show")
	if !errors.Is(err, errCommandFailed) {
		t.Fatalf("error = %v, want errCommandFailed", err)
	}
	if !strings.Contains(out, "Unknown command: frobnicate. Available commands: add, center,") || !strings.Contains(out, "format") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Outline") {
		t.Error("execution should stop at the first failure")
	}
}

func TestExecDryRun(t *testing.T) {
	isolate(t)

	out, err := run(t, "exec", "--dry-run", `rename "Weekly plan"`)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != `Would execute rename text="Weekly plan"` {
		t.Errorf("output = %q", got)
	}
}

func TestExecJSON(t *testing.T) {
	isolate(t)

	out, err := run(t, "exec", "--json", "add one", "center")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}

	first := gjson.Parse(lines[0])
	if first.Get("input").String() != "add one" || !first.Get("success").Bool() {
		t.Errorf("first = %s", lines[0])
	}
	if first.Get("message").String() != "Added one" || first.Get("data").String() != "n2" {
		t.Errorf("first = %s", lines[0])
	}
	if gjson.Get(lines[1], "message").String() != "Centered on one" {
		t.Errorf("second = %s", lines[1])
	}
}

func TestKeys(t *testing.T) {
	isolate(t)

	out, err := run(t, "keys", "o", "o", "o", "gg", "j", "2dd", ".", "--show")
	if err != nil {
		t.Fatalf("keys error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Deleted 2 nodes") {
		t.Errorf("output missing delete:\n%s", out)
	}
	if !strings.HasSuffix(out, "> Outline (n1)\n") {
		t.Errorf("every node should be deleted:\n%s", out)
	}

	_, err = run(t, "keys", "q")
	if !errors.Is(err, errCommandFailed) {
		t.Errorf("unknown sequence error = %v", err)
	}
}

func TestCommandsListing(t *testing.T) {
	isolate(t)

	out, err := run(t, "commands")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Navigation", "Edit", "delete", "(rm)"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q", want)
		}
	}

	out, err = run(t, "commands", "yank")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "yank-line") {
		t.Errorf("search output = %q", out)
	}
}

func TestHelp(t *testing.T) {
	isolate(t)

	out, err := run(t, "help", "rename")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Usage: rename --text <string>") {
		t.Errorf("help rename = %q", out)
	}

	out, err = run(t, "help", "exec")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "mindcmd exec <command-line>...") {
		t.Errorf("help exec should show CLI usage:\n%s", out)
	}

	out, err = run(t, "help", "renam")
	if !errors.Is(err, errCommandFailed) || !strings.Contains(out, "did you mean rename") {
		t.Errorf("help renam = %v %q", err, out)
	}
}

func TestHistory(t *testing.T) {
	isolate(t)

	if _, err := run(t, "exec", "add one", "add two"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "keys", "gg"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "history", "-n", "2", "--json")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	// Oldest first.
	if gjson.Get(lines[0], "raw").String() != "add two" || gjson.Get(lines[1], "command").String() != "first" {
		t.Errorf("history = %s", out)
	}
	if gjson.Get(lines[1], "source").String() != "keys" {
		t.Errorf("source = %s", lines[1])
	}

	out, err = run(t, "history", "--stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "add") || !strings.Contains(out, "COMMAND") {
		t.Errorf("stats = %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "--config", filepath.Join(dir, "missing.toml"), "commands")
	if err == nil {
		t.Error("an explicit missing config should fail")
	}
}

func TestCompleter(t *testing.T) {
	reg := registry.New()
	if err := reg.RegisterAll(outline.Commands()); err != nil {
		t.Fatal(err)
	}
	c := &completer{reg: reg}

	tests := []struct {
		line   string
		want   []string
		length int
	}{
		{"ren", []string{"ame "}, 3},
		{"yank-", []string{"line ", "subtree "}, 5},
		{"add --", []string{"text ", "child "}, 2},
		{"add --text x --c", []string{"hild "}, 3},
		{"add ", nil, 0},
		{"nosuch --", nil, 0},
		{"show x", nil, 0},
	}

	for _, tt := range tests {
		got, length := c.Do([]rune(tt.line), len([]rune(tt.line)))
		var gotStr []string
		for _, g := range got {
			gotStr = append(gotStr, string(g))
		}
		if strings.Join(gotStr, "|") != strings.Join(tt.want, "|") || length != tt.length {
			t.Errorf("Do(%q) = %q, %d; want %q, %d", tt.line, gotStr, length, tt.want, tt.length)
		}
	}
}

func TestReplLine(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.History.Enabled = false
	cfg.Plugins.Dir = filepath.Join(dir, "plugins")

	c := &cli{cfg: cfg, logger: zap.NewNop()}
	a, err := c.newApp()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	if c.replLine(cmd, a, "  ") {
		t.Error("blank line should not quit")
	}
	c.replLine(cmd, a, "add first")
	c.replLine(cmd, a, "@gg")
	c.replLine(cmd, a, "frobnicate")
	if !c.replLine(cmd, a, "quit") {
		t.Error("quit should exit")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	if lines[0] != "Added first" || lines[1] != "Selected Outline" {
		t.Errorf("output = %q", lines[:2])
	}
	if !strings.HasPrefix(lines[2], "error: Unknown command: frobnicate.") || !strings.Contains(lines[2], "format") {
		t.Errorf("unknown command line = %q", lines[2])
	}
}
