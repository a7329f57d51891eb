package key

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Kind classifies a key event.
type Kind uint8

const (
	// KindNone is an event the session ignores (function keys, arrows...).
	KindNone Kind = iota
	// KindRune is a printable character.
	KindRune
	// KindEscape cancels the pending sequence.
	KindEscape
	// KindEnter submits a command line.
	KindEnter
	// KindBackspace deletes the last typed character.
	KindBackspace
	// KindInterrupt is Ctrl-C or Ctrl-Q.
	KindInterrupt
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRune:
		return "rune"
	case KindEscape:
		return "escape"
	case KindEnter:
		return "enter"
	case KindBackspace:
		return "backspace"
	case KindInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Event is a key press reduced to what the modal session needs.
type Event struct {
	Kind      Kind
	Rune      rune
	Modifiers Modifier
}

// FromTcell converts a tcell key event.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMod(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		if mods.Has(ModCtrl) && (ev.Rune() == 'c' || ev.Rune() == 'q') {
			return Event{Kind: KindInterrupt, Modifiers: mods}
		}
		return Event{Kind: KindRune, Rune: ev.Rune(), Modifiers: mods}
	case tcell.KeyEscape:
		return Event{Kind: KindEscape, Modifiers: mods}
	case tcell.KeyEnter:
		return Event{Kind: KindEnter, Modifiers: mods}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Kind: KindBackspace, Modifiers: mods}
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return Event{Kind: KindInterrupt, Modifiers: mods | ModCtrl}
	default:
		return Event{Kind: KindNone, Modifiers: mods}
	}
}

// Token returns the key-sequence token for the event. Only unmodified
// printable characters produce tokens; Shift is part of the character.
func (e Event) Token() (string, bool) {
	if e.Kind != KindRune || !unicode.IsPrint(e.Rune) {
		return "", false
	}
	if e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) || e.Modifiers.Has(ModMeta) {
		return "", false
	}
	return string(e.Rune), true
}

// String returns a Vim-style representation, e.g. "j", "<Esc>", "<C-c>".
func (e Event) String() string {
	if tok, ok := e.Token(); ok {
		return tok
	}

	name := ""
	switch e.Kind {
	case KindRune:
		name = string(e.Rune)
	case KindEscape:
		name = "Esc"
	case KindEnter:
		name = "CR"
	case KindBackspace:
		name = "BS"
	case KindInterrupt:
		name = "c"
	default:
		return "<None>"
	}

	mods := e.Modifiers.Without(ModShift).String()
	if mods == "" {
		return "<" + name + ">"
	}
	return "<" + mods + "-" + name + ">"
}
