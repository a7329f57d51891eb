package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name      string
		ev        *tcell.EventKey
		kind      Kind
		token     string
		hasToken  bool
		formatted string
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), KindRune, "j", true, "j"},
		{"shifted letter", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModShift), KindRune, "G", true, "G"},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '5', tcell.ModNone), KindRune, "5", true, "5"},
		{"punctuation", tcell.NewEventKey(tcell.KeyRune, '>', tcell.ModShift), KindRune, ">", true, ">"},
		{"alt letter", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), KindRune, "", false, "<A-x>"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KindEscape, "", false, "<Esc>"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KindEnter, "", false, "<CR>"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), KindBackspace, "", false, "<BS>"},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), KindInterrupt, "", false, "<C-c>"},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KindNone, "", false, "<None>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromTcell(tt.ev)
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.kind)
			}
			tok, ok := e.Token()
			if tok != tt.token || ok != tt.hasToken {
				t.Errorf("Token() = %q, %v, want %q, %v", tok, ok, tt.token, tt.hasToken)
			}
			if got := e.String(); got != tt.formatted {
				t.Errorf("String() = %q, want %q", got, tt.formatted)
			}
		})
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "C"},
		{ModCtrl | ModShift, "C-S"},
		{ModAlt | ModMeta, "A-D"},
	}
	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}
