package key

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Modifier is a set of held modifier keys.
type Modifier uint8

// Modifier bits. Meta is Cmd on macOS.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifierOrder fixes the order prefixes appear in a "<C-A-x>" token
// alongside the matching tcell bit.
var modifierOrder = [...]struct {
	mod    Modifier
	prefix string
	tcell  tcell.ModMask
}{
	{ModCtrl, "C", tcell.ModCtrl},
	{ModAlt, "A", tcell.ModAlt},
	{ModMeta, "D", tcell.ModMeta},
	{ModShift, "S", tcell.ModShift},
}

// Has reports whether any bit of mod is set in m.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// Without clears mod from m.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// String joins the token prefixes, e.g. "C-A". An empty set is "".
func (m Modifier) String() string {
	var sb strings.Builder
	for _, o := range modifierOrder {
		if !m.Has(o.mod) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(o.prefix)
	}
	return sb.String()
}

func fromTcellMod(mask tcell.ModMask) Modifier {
	var m Modifier
	for _, o := range modifierOrder {
		if mask&o.tcell != 0 {
			m |= o.mod
		}
	}
	return m
}
