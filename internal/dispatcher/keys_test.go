package dispatcher_test

import (
	"context"
	"testing"

	"github.com/dshills/mindcmd/internal/command"
	"github.com/dshills/mindcmd/internal/dispatcher"
	"github.com/dshills/mindcmd/internal/input/keyseq"
	"github.com/dshills/mindcmd/internal/registry"
)

type keyFixture struct {
	d    *dispatcher.Dispatcher
	down *recorder
	list *recorder
	del  *recorder
	add  *recorder
}

func newKeyFixture(t *testing.T) *keyFixture {
	t.Helper()
	f := &keyFixture{down: &recorder{}, list: &recorder{}, del: &recorder{}, add: &recorder{}}
	f.d = newDispatcher(t,
		&command.Command{Name: "down", Countable: true, Execute: f.down.execute},
		&command.Command{Name: "number-list", Countable: true, Execute: f.list.execute},
		&command.Command{Name: "delete-line", Countable: true, Repeatable: true, Execute: f.del.execute},
		&command.Command{
			Name: "add",
			Args: []command.ArgSpec{
				{Name: "text", Type: command.ArgString, Required: true},
				{Name: "child", Type: command.ArgBoolean, Default: false},
			},
			Repeatable: true,
			Execute:    f.add.execute,
		},
	)
	return f
}

func TestExecuteKeySequence(t *testing.T) {
	f := newKeyFixture(t)
	ctx := context.Background()

	m, result := f.d.ExecuteKeySequence(ctx, "3j", nil)
	if !m.Complete || !result.Success {
		t.Fatalf("3j: match=%+v result=%+v", m, result)
	}
	inv := f.down.last()
	if inv.Count != 3 || inv.Source != command.SourceKeys || inv.Raw != "3j" {
		t.Errorf("invocation = count %d source %v raw %q", inv.Count, inv.Source, inv.Raw)
	}

	m, result = f.d.ExecuteKeySequence(ctx, "d", nil)
	if !m.Partial || result.Success {
		t.Errorf("d: match=%+v result=%+v", m, result)
	}

	m, result = f.d.ExecuteKeySequence(ctx, "q", nil)
	if !m.ShouldClear || result.Error != "Unknown key sequence: q" {
		t.Errorf("q: match=%+v result=%+v", m, result)
	}
}

func TestNumberListCount(t *testing.T) {
	f := newKeyFixture(t)

	m, result := f.d.ExecuteKeySequence(context.Background(), "5m", nil)
	if m.Command != "m:5" {
		t.Errorf("Command = %q, want m:5", m.Command)
	}
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	if got := f.list.last().Count; got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}
}

func TestBindingWithArguments(t *testing.T) {
	f := newKeyFixture(t)

	_, result := f.d.ExecuteKeySequence(context.Background(), "O", nil)
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	inv := f.add.last()
	if inv.Args.String("text") != "New node" || !inv.Args.Bool("child") {
		t.Errorf("args = %s", inv.Args.Format())
	}
}

func TestDotRepeat(t *testing.T) {
	f := newKeyFixture(t)
	ctx := context.Background()

	_, result := f.d.ExecuteKeySequence(ctx, ".", nil)
	if result.Success || result.Error != "Nothing to repeat" {
		t.Fatalf("empty repeat = %+v", result)
	}

	f.d.ExecuteKeySequence(ctx, "2dd", nil)
	// Non-repeatable commands do not replace the recorded one.
	f.d.ExecuteKeySequence(ctx, "j", nil)

	if name, ok := f.d.LastRepeatable(); !ok || name != "delete-line" {
		t.Fatalf("LastRepeatable() = %q, %v", name, ok)
	}

	_, result = f.d.ExecuteKeySequence(ctx, ".", nil)
	if !result.Success {
		t.Fatalf("repeat = %+v", result)
	}
	if len(f.del.calls) != 2 {
		t.Fatalf("delete-line calls = %d, want 2", len(f.del.calls))
	}
	inv := f.del.last()
	if inv.Count != 2 || inv.Source != command.SourceRepeat {
		t.Errorf("repeat invocation count=%d source=%v", inv.Count, inv.Source)
	}

	// A new count replaces the old one and sticks.
	f.d.ExecuteKeySequence(ctx, "4.", nil)
	if got := f.del.last().Count; got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
	f.d.ExecuteKeySequence(ctx, ".", nil)
	if got := f.del.last().Count; got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
}

func TestDotRepeatKeepsArguments(t *testing.T) {
	f := newKeyFixture(t)
	ctx := context.Background()

	f.d.Execute(ctx, `add "Groceries" --child`, nil, dispatcher.Options{})
	f.d.Repeat(ctx, 0, nil)

	if len(f.add.calls) != 2 {
		t.Fatalf("add calls = %d, want 2", len(f.add.calls))
	}
	inv := f.add.last()
	if inv.Args.String("text") != "Groceries" || !inv.Args.Bool("child") {
		t.Errorf("repeated args = %s", inv.Args.Format())
	}
}

func TestDotRepeatRejectsNoLongerRepeatable(t *testing.T) {
	f := newKeyFixture(t)
	ctx := context.Background()

	f.d.Execute(ctx, `add "Groceries"`, nil, dispatcher.Options{})

	// Reloading a script can replace a command under the same name.
	reg := f.d.Registry()
	if !reg.Unregister("add") {
		t.Fatal("Unregister(add) = false")
	}
	if err := reg.Register(&command.Command{Name: "add", Execute: f.add.execute}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, result := f.d.ExecuteKeySequence(ctx, ".", nil)
	if result.Success || result.Error != "Command add cannot be repeated" {
		t.Errorf("repeat = %+v", result)
	}
	if len(f.add.calls) != 1 {
		t.Errorf("add calls = %d, want 1", len(f.add.calls))
	}
	if _, ok := f.d.LastRepeatable(); ok {
		t.Error("stale invocation still recorded")
	}

	_, result = f.d.ExecuteKeySequence(ctx, ".", nil)
	if result.Error != "Nothing to repeat" {
		t.Errorf("second repeat = %+v", result)
	}
}

func TestKeySession(t *testing.T) {
	f := newKeyFixture(t)
	ctx := context.Background()
	s := f.d.NewKeySession()

	steps := []struct {
		key      string
		executed bool
		state    keyseq.State
		pending  string
	}{
		{"1", false, keyseq.StateCount, "1"},
		{"2", false, keyseq.StateCount, "12"},
		{"d", false, keyseq.StateChord, "12d"},
		{"d", true, keyseq.StateComplete, ""},
		{"q", false, keyseq.StateInvalid, ""},
		{"j", true, keyseq.StateComplete, ""},
	}

	for i, step := range steps {
		out := s.Feed(ctx, step.key, nil)
		if out.Executed != step.executed {
			t.Errorf("step %d (%q): Executed = %v, want %v", i, step.key, out.Executed, step.executed)
		}
		if got := out.Match.State(); got != step.state {
			t.Errorf("step %d (%q): State = %v, want %v", i, step.key, got, step.state)
		}
		if got := s.Pending(); got != step.pending {
			t.Errorf("step %d (%q): Pending = %q, want %q", i, step.key, got, step.pending)
		}
	}

	if got := f.del.last().Count; got != 12 {
		t.Errorf("delete-line Count = %d, want 12", got)
	}
	if got := f.del.last().Raw; got != "12dd" {
		t.Errorf("Raw = %q, want 12dd", got)
	}
}

func TestSetKeyBindings(t *testing.T) {
	f := newKeyFixture(t)
	ctx := context.Background()
	s := f.d.NewKeySession()

	s.Feed(ctx, "d", nil)

	f.d.SetKeyBindings(keyseq.MustTable(map[string]string{"n": "down"}))

	// Swapping tables discards the half-typed chord.
	out := s.Feed(ctx, "n", nil)
	if !out.Executed || !out.Result.Success {
		t.Fatalf("outcome = %+v", out)
	}
	if len(f.down.calls) != 1 {
		t.Errorf("down calls = %d, want 1", len(f.down.calls))
	}

	_, result := f.d.ExecuteKeySequence(ctx, "j", nil)
	if result.Success {
		t.Error("old binding j still active")
	}
}

func TestUnregisteredBindingTarget(t *testing.T) {
	d := dispatcher.New(registry.New(), dispatcher.DefaultConfig(),
		dispatcher.WithKeyTable(keyseq.MustTable(map[string]string{"z": "nowhere"})))

	_, result := d.ExecuteKeySequence(context.Background(), "z", nil)
	if !dispatcher.IsUnknownCommand(result) {
		t.Errorf("result = %+v, want unknown command", result)
	}
}
