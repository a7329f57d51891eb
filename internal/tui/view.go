// Package tui is the full-screen modal front end: it draws the outline with
// tcell, feeds keystrokes to a key session and runs ":" command lines.
package tui

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mindcmd/internal/dispatcher"
	"github.com/dshills/mindcmd/internal/input/key"
	"github.com/dshills/mindcmd/internal/outline"
)

// Mode is the input mode of the view.
type Mode uint8

const (
	// ModeNormal sends keys to the key-sequence session.
	ModeNormal Mode = iota
	// ModeCommand edits a ":" command line.
	ModeCommand
)

// String returns the mode name shown in the status line.
func (m Mode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// CommandKey switches to command-line mode.
const CommandKey = ':'

// View renders an outline and routes key events.
type View struct {
	screen  tcell.Screen
	d       *dispatcher.Dispatcher
	tree    *outline.Tree
	session *dispatcher.KeySession

	mode    Mode
	cmdline []rune
	status  string
}

// New creates a view drawing on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, d *dispatcher.Dispatcher, tree *outline.Tree) *View {
	return &View{
		screen:  screen,
		d:       d,
		tree:    tree,
		session: d.NewKeySession(),
	}
}

// Mode returns the current input mode.
func (v *View) Mode() Mode { return v.mode }

// Status returns the status message.
func (v *View) Status() string { return v.status }

// CommandLine returns the command line being edited.
func (v *View) CommandLine() string { return string(v.cmdline) }

// Pending returns the buffered keys of an unfinished sequence.
func (v *View) Pending() string { return v.session.Pending() }

// Run draws and handles events until an interrupt key, ctx cancellation or
// the screen being finalized.
func (v *View) Run(ctx context.Context) error {
	for {
		v.Draw()

		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ctx, key.FromTcell(ev)) {
				return nil
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// HandleKey processes one key event and reports whether the view should
// quit.
func (v *View) HandleKey(ctx context.Context, ev key.Event) bool {
	if ev.Kind == key.KindInterrupt {
		return true
	}
	if v.mode == ModeCommand {
		v.handleCommandKey(ctx, ev)
		return false
	}

	switch ev.Kind {
	case key.KindEscape:
		v.session.Reset()
		v.status = ""
		return false
	case key.KindRune:
		if ev.Rune == CommandKey && v.session.Pending() == "" {
			v.mode = ModeCommand
			v.cmdline = v.cmdline[:0]
			return false
		}
	}

	tok, ok := ev.Token()
	if !ok {
		return false
	}

	out := v.session.Feed(ctx, tok, v.tree)
	switch {
	case out.Executed:
		v.status = firstLine(out.Result.String())
	case out.Match.ShouldClear:
		v.status = "Unknown key sequence: " + out.Keys
	default:
		v.status = ""
	}
	return false
}

func (v *View) handleCommandKey(ctx context.Context, ev key.Event) {
	switch ev.Kind {
	case key.KindEscape:
		v.mode = ModeNormal
		v.cmdline = v.cmdline[:0]
	case key.KindBackspace:
		if len(v.cmdline) == 0 {
			v.mode = ModeNormal
			return
		}
		v.cmdline = v.cmdline[:len(v.cmdline)-1]
	case key.KindEnter:
		line := strings.TrimSpace(string(v.cmdline))
		v.mode = ModeNormal
		v.cmdline = v.cmdline[:0]
		if line == "" {
			return
		}
		r := v.d.Execute(ctx, line, v.tree, dispatcher.Options{})
		v.status = firstLine(r.String())
	case key.KindRune:
		v.cmdline = append(v.cmdline, ev.Rune)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

var (
	styleNormal   = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Draw renders the outline and the status line.
func (v *View) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	if height == 0 {
		return
	}

	selected := v.tree.Selected()
	y := 0
	var walk func(n *outline.Node, depth int)
	walk = func(n *outline.Node, depth int) {
		if y >= height-1 {
			return
		}
		style := styleNormal
		if n == selected {
			style = styleSelected
		}
		drawText(v.screen, 0, y, width, strings.Repeat("  ", depth)+n.Title, style)
		y++
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(v.tree.Root(), 0)

	v.drawStatus(width, height-1)
	v.screen.Show()
}

func (v *View) drawStatus(width, y int) {
	for x := range width {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	if v.mode == ModeCommand {
		text := ":" + string(v.cmdline)
		drawText(v.screen, 0, y, width, text, styleStatus)
		v.screen.ShowCursor(min(len([]rune(text)), width-1), y)
		return
	}
	v.screen.HideCursor()

	left := v.mode.String()
	if v.status != "" {
		left += "  " + v.status
	}
	drawText(v.screen, 0, y, width, left, styleStatus)

	if pending := v.session.Pending(); pending != "" {
		drawText(v.screen, max(width-len([]rune(pending))-1, 0), y, width, pending, styleStatus)
	}
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
