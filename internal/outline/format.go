package outline

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is a list marker style applied by Format.
type Style string

// List styles.
const (
	StyleNumbered Style = "numbered"
	StyleBullet   Style = "bullet"
	StylePlain    Style = "plain"
)

// ParseStyle converts a style name into a Style.
func ParseStyle(name string) (Style, error) {
	switch s := Style(strings.ToLower(strings.TrimSpace(name))); s {
	case StyleNumbered, StyleBullet, StylePlain:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// Format applies style to the children of the selection. A positive limit
// formats only the first limit children. It returns the number of children
// changed. A leaf selection is formatted together with its following
// siblings instead.
func (t *Tree) Format(style Style, limit int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes := t.selected.Children
	if len(nodes) == 0 && t.selected.parent != nil {
		nodes = t.selected.parent.Children[t.selected.index():]
	}
	if limit > 0 && limit < len(nodes) {
		nodes = nodes[:limit]
	}

	for i, n := range nodes {
		title := stripMarker(n.Title)
		switch style {
		case StyleNumbered:
			title = strconv.Itoa(i+1) + ". " + title
		case StyleBullet:
			title = "- " + title
		}
		n.Title = title
	}
	return len(nodes)
}

// stripMarker removes a leading "N. ", "- " or "* " list marker.
func stripMarker(title string) string {
	if rest, ok := strings.CutPrefix(title, "- "); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(title, "* "); ok {
		return rest
	}
	digits := 0
	for digits < len(title) && title[digits] >= '0' && title[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		if rest, ok := strings.CutPrefix(title[digits:], ". "); ok {
			return rest
		}
	}
	return title
}

// Render returns the tree as indented text, one node per line. The selected
// node is marked with "> ".
func (t *Tree) Render() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		marker := "  "
		if n == t.selected {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s%s (%s)\n", marker, strings.Repeat("  ", depth), n.Title, n.ID)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(t.root, 0)
	return b.String()
}

// Titles returns every title in visible order.
func (t *Tree) Titles() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes := t.visible()
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Title
	}
	return out
}
