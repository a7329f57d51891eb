package keyseq

import (
	"errors"
	"testing"
)

func feedAll(s *Session, keys ...string) []Result {
	out := make([]Result, len(keys))
	for i, k := range keys {
		out[i] = s.Feed(k)
	}
	return out
}

func TestMatchSingleKeys(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name      string
		keys      string
		wantCmd   string
		wantCount int
	}{
		{"simple j", "j", "j", 0},
		{"simple G", "G", "G", 0},
		{"3j", "3j", "j", 3},
		{"10k", "10k", "k", 10},
		{"gg", "gg", "gg", 0},
		{"5dd", "5dd", "dd", 5},
		{"yap", "yap", "yap", 0},
		{"bare m", "m", "m", 0},
		{"count m", "5m", "m:5", 5},
		{"big count m", "12m", "m:12", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Match(tt.keys, table)
			if !r.Complete {
				t.Fatalf("Match(%q) = %+v, want complete", tt.keys, r)
			}
			if r.Partial || r.ShouldClear {
				t.Errorf("Match(%q) complete result should not be partial or clear: %+v", tt.keys, r)
			}
			if r.Command != tt.wantCmd {
				t.Errorf("Command = %q, want %q", r.Command, tt.wantCmd)
			}
			if r.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", r.Count, tt.wantCount)
			}
		})
	}
}

func TestMatchPartial(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		keys      string
		wantState State
		wantCount int
	}{
		{"3", StateCount, 3},
		{"30", StateCount, 30},
		{"d", StateChord, 0},
		{"g", StateChord, 0},
		{"4d", StateChord, 4},
		{"ya", StateChord, 0},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			r := Match(tt.keys, table)
			if !r.Partial || r.Complete || r.ShouldClear {
				t.Fatalf("Match(%q) = %+v, want partial", tt.keys, r)
			}
			if got := r.State(); got != tt.wantState {
				t.Errorf("State() = %v, want %v", got, tt.wantState)
			}
			if r.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", r.Count, tt.wantCount)
			}
		})
	}
}

func TestMatchInvalid(t *testing.T) {
	table := DefaultTable()

	for _, keys := range []string{"q", "0", "dx", "3q", "yax", "zx"} {
		t.Run(keys, func(t *testing.T) {
			r := Match(keys, table)
			if r.Complete || r.Partial || !r.ShouldClear {
				t.Errorf("Match(%q) = %+v, want invalid", keys, r)
			}
			if r.State() != StateInvalid {
				t.Errorf("State() = %v, want invalid", r.State())
			}
		})
	}
}

func TestMatchDotRepeat(t *testing.T) {
	table := DefaultTable()

	r := Match(".", table)
	if !r.Complete || !r.DotRepeat || r.Command != "." {
		t.Errorf("Match(.) = %+v", r)
	}

	r = Match("3.", table)
	if !r.Complete || !r.DotRepeat || r.Count != 3 {
		t.Errorf("Match(3.) = %+v", r)
	}
}

func TestMatchEmpty(t *testing.T) {
	r := Match("", DefaultTable())
	if r.Complete || r.Partial || r.ShouldClear {
		t.Errorf("Match(\"\") = %+v, want zero result", r)
	}
	if r.State() != StateIdle {
		t.Errorf("State() = %v, want idle", r.State())
	}
}

func TestMatchCountOverflowCaps(t *testing.T) {
	r := Match("99999999999999999999999j", DefaultTable())
	if !r.Complete || r.Count != maxCount {
		t.Errorf("Match(huge count) = %+v, want count capped at %d", r, maxCount)
	}
}

func TestSessionChord(t *testing.T) {
	s := NewSession(DefaultTable())

	rs := feedAll(s, "d", "d")
	if !rs[0].Partial {
		t.Errorf("first d = %+v, want partial", rs[0])
	}
	if s.Pending() != "" {
		t.Errorf("buffer should be cleared after complete, got %q", s.Pending())
	}
	if !rs[1].Complete || rs[1].Command != "dd" {
		t.Errorf("second d = %+v, want complete dd", rs[1])
	}
}

func TestSessionCount(t *testing.T) {
	s := NewSession(DefaultTable())

	rs := feedAll(s, "3", "j")
	if !rs[0].Partial || rs[0].Count != 3 {
		t.Errorf("3 = %+v, want partial count 3", rs[0])
	}
	if !rs[1].Complete || rs[1].Command != "j" || rs[1].Count != 3 {
		t.Errorf("j = %+v, want complete j count 3", rs[1])
	}

	rs = feedAll(s, "5", "m")
	if !rs[1].Complete || rs[1].Command != "m:5" {
		t.Errorf("5m = %+v, want complete m:5", rs[1])
	}
}

func TestSessionInvalidClears(t *testing.T) {
	s := NewSession(DefaultTable())

	r := s.Feed("q")
	if !r.ShouldClear {
		t.Fatalf("q = %+v, want invalid", r)
	}
	if s.Pending() != "" {
		t.Errorf("buffer = %q, want empty", s.Pending())
	}

	// The next key starts from idle.
	r = s.Feed("j")
	if !r.Complete || r.Command != "j" {
		t.Errorf("j after invalid = %+v", r)
	}
}

func TestSessionPendingAndReset(t *testing.T) {
	s := NewSession(DefaultTable())
	s.Feed("2")
	s.Feed("y")
	if s.Pending() != "2y" {
		t.Errorf("Pending() = %q, want %q", s.Pending(), "2y")
	}
	s.Reset()
	if s.Pending() != "" {
		t.Errorf("Pending() after Reset = %q", s.Pending())
	}
}

func TestCustomTable(t *testing.T) {
	table, err := NewTable(map[string]string{"abc": "alpha", "ab": "beta"})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	if r := Match("a", table); !r.Partial {
		t.Errorf("a = %+v, want partial", r)
	}
	// "ab" is both a pattern and a prefix of "abc"; the exact match wins.
	if r := Match("ab", table); !r.Complete || r.Command != "ab" {
		t.Errorf("ab = %+v, want complete", r)
	}
	if r := Match("abc", table); !r.Complete || r.Command != "abc" {
		t.Errorf("abc = %+v, want complete", r)
	}
	if r := Match("j", table); !r.ShouldClear {
		t.Errorf("j = %+v, want invalid with custom table", r)
	}
}

func TestNewTableRejectsReserved(t *testing.T) {
	tests := []struct {
		name     string
		bindings map[string]string
		wantErr  error
	}{
		{"empty", map[string]string{"": "x"}, ErrEmptyPattern},
		{"dot", map[string]string{".": "x"}, ErrReservedPattern},
		{"count", map[string]string{"2x": "x"}, ErrReservedPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.bindings)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTable() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableCommand(t *testing.T) {
	table := DefaultTable()
	cmd, ok := table.Command("dd")
	if !ok || cmd != "delete-line" {
		t.Errorf("Command(dd) = %q, %v", cmd, ok)
	}
	if _, ok := table.Command("zzz"); ok {
		t.Error("Command(zzz) should be unbound")
	}
	if table.Len() != len(DefaultBindings) {
		t.Errorf("Len() = %d, want %d", table.Len(), len(DefaultBindings))
	}
}
