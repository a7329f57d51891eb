package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/dispatcher"
	"github.com/dshills/mindcmd/internal/input/key"
	"github.com/dshills/mindcmd/internal/outline"
	"github.com/dshills/mindcmd/internal/registry"
)

func newTestView(t *testing.T) (*View, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(screen.Fini)

	reg := registry.New()
	if err := reg.RegisterAll(outline.Commands()); err != nil {
		t.Fatal(err)
	}
	d := dispatcher.New(reg, dispatcher.DefaultConfig(), dispatcher.WithLogger(zap.NewNop()))

	tree := outline.NewTree("Root")
	tree.Add("alpha", false)
	tree.Add("beta", false)
	tree.Jump(1)

	return New(screen, d, tree), screen
}

func runes(v *View, s string) {
	for _, r := range s {
		v.HandleKey(context.Background(), key.Event{Kind: key.KindRune, Rune: r})
	}
}

func rowText(s tcell.SimulationScreen, y, width int) string {
	out := make([]rune, 0, width)
	for x := range width {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		out = append(out, r)
	}
	return string(out)
}

func TestNormalModeKeys(t *testing.T) {
	v, _ := newTestView(t)

	runes(v, "2j")
	if got := v.tree.Selected().Title; got != "beta" {
		t.Errorf("selected %q after 2j, want beta", got)
	}
	if v.Status() != "Selected beta" {
		t.Errorf("Status() = %q", v.Status())
	}

	runes(v, "g")
	if v.Pending() != "g" {
		t.Errorf("Pending() = %q, want g", v.Pending())
	}
	v.HandleKey(context.Background(), key.Event{Kind: key.KindEscape})
	if v.Pending() != "" {
		t.Errorf("Escape should clear pending, got %q", v.Pending())
	}

	runes(v, "q")
	if v.Status() != "Unknown key sequence: q" {
		t.Errorf("Status() = %q", v.Status())
	}
}

func TestCommandMode(t *testing.T) {
	v, _ := newTestView(t)
	ctx := context.Background()

	runes(v, ":")
	if v.Mode() != ModeCommand {
		t.Fatal("':' should enter command mode")
	}
	runes(v, "add gammx")
	v.HandleKey(ctx, key.Event{Kind: key.KindBackspace})
	runes(v, "a")
	if v.CommandLine() != "add gamma" {
		t.Errorf("CommandLine() = %q", v.CommandLine())
	}

	v.HandleKey(ctx, key.Event{Kind: key.KindEnter})
	if v.Mode() != ModeNormal {
		t.Error("Enter should return to normal mode")
	}
	if v.Status() != "Added gamma" {
		t.Errorf("Status() = %q", v.Status())
	}

	runes(v, ":")
	v.HandleKey(ctx, key.Event{Kind: key.KindBackspace})
	if v.Mode() != ModeNormal {
		t.Error("Backspace on empty line should leave command mode")
	}

	runes(v, ":frob")
	v.HandleKey(ctx, key.Event{Kind: key.KindEscape})
	if v.Mode() != ModeNormal || v.CommandLine() != "" {
		t.Error("Escape should cancel the command line")
	}
}

func TestInterruptQuits(t *testing.T) {
	v, _ := newTestView(t)
	if !v.HandleKey(context.Background(), key.Event{Kind: key.KindInterrupt, Modifiers: key.ModCtrl}) {
		t.Error("interrupt should quit")
	}
}

func TestDraw(t *testing.T) {
	v, screen := newTestView(t)
	runes(v, "j")
	v.Draw()

	if got := rowText(screen, 0, 6); got != "Root  " {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(screen, 1, 7); got != "  alpha" {
		t.Errorf("row 1 = %q", got)
	}
	if _, _, style, _ := screen.GetContent(2, 1); style != styleSelected { //nolint:staticcheck // GetContent is the correct API
		t.Error("selected row should be highlighted")
	}
	if got := rowText(screen, 9, 6); got != "NORMAL" {
		t.Errorf("status row = %q", got)
	}
}

func TestRunStopsOnInterrupt(t *testing.T) {
	v, screen := newTestView(t)

	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on Ctrl-C")
	}
	if got := v.tree.Selected().Title; got != "alpha" {
		t.Errorf("selected %q, want alpha", got)
	}
}
