package outline

import (
	"fmt"
	"strconv"
	"sync"
)

// Node is one titled entry in the tree.
type Node struct {
	ID       string
	Title    string
	Children []*Node

	parent *Node
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// index returns the position of n among its siblings.
func (n *Node) index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Tree is an outline with a selection and a clipboard.
// It is safe for concurrent use.
type Tree struct {
	mu        sync.Mutex
	root      *Node
	selected  *Node
	clipboard []*Node
	nextID    int
}

// NewTree creates a tree whose root has the given title.
// The root starts selected.
func NewTree(title string) *Tree {
	t := &Tree{}
	t.root = t.newNode(title)
	t.selected = t.root
	return t
}

func (t *Tree) newNode(title string) *Node {
	t.nextID++
	return &Node{ID: "n" + strconv.Itoa(t.nextID), Title: title}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

// Selected returns the selected node.
func (t *Tree) Selected() *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// SelectedIsRoot reports whether the root is selected.
func (t *Tree) SelectedIsRoot() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected == t.root
}

// HasClipboard reports whether anything has been yanked.
func (t *Tree) HasClipboard() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clipboard) > 0
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visible())
}

// Find returns the node with the given ID.
func (t *Tree) Find(id string) (*Node, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.find(id)
	return n, n != nil
}

func (t *Tree) find(id string) *Node {
	for _, n := range t.visible() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// visible returns all nodes in pre-order.
func (t *Tree) visible() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

func (t *Tree) position(n *Node) int {
	for i, v := range t.visible() {
		if v == n {
			return i
		}
	}
	return 0
}

// Select selects the node with the given ID.
func (t *Tree) Select(id string) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.find(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	t.selected = n
	return n, nil
}

// Add inserts a node titled title and selects it. With child set it becomes
// the last child of the selection; otherwise it follows the selection as a
// sibling. Adding a sibling to the root adds a child instead.
func (t *Tree) Add(title string, child bool) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.newNode(title)
	if child || t.selected == t.root {
		t.appendChild(t.selected, n)
	} else {
		t.insertAfter(t.selected, n)
	}
	t.selected = n
	return n
}

func (t *Tree) appendChild(parent, n *Node) {
	n.parent = parent
	parent.Children = append(parent.Children, n)
}

func (t *Tree) insertAfter(sibling, n *Node) {
	parent := sibling.parent
	i := sibling.index()
	n.parent = parent
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[i+2:], parent.Children[i+1:])
	parent.Children[i+1] = n
}

func (t *Tree) detach(n *Node) {
	parent := n.parent
	i := n.index()
	parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
	n.parent = nil
}

// Delete removes the selected node and its subtree. The selection moves to
// the next sibling, then the previous sibling, then the parent.
func (t *Tree) Delete() (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delete()
}

func (t *Tree) delete() (*Node, error) {
	n := t.selected
	if n == t.root {
		return nil, ErrRootNode
	}

	parent := n.parent
	i := n.index()
	t.detach(n)

	switch {
	case i < len(parent.Children):
		t.selected = parent.Children[i]
	case i > 0:
		t.selected = parent.Children[i-1]
	default:
		t.selected = parent
	}
	return n, nil
}

// DeleteN deletes up to n nodes starting at the selection and returns how
// many were removed.
func (t *Tree) DeleteN(n int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for range max(n, 1) {
		if _, err := t.delete(); err != nil {
			if removed == 0 {
				return 0, err
			}
			break
		}
		removed++
	}
	return removed, nil
}

// Rename sets the title of the selected node.
func (t *Tree) Rename(title string) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected.Title = title
	return t.selected
}

// Move moves the selection delta steps in visible order, stopping at either
// end. It reports the node now selected.
func (t *Tree) Move(delta int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes := t.visible()
	pos := t.position(t.selected) + delta
	pos = min(max(pos, 0), len(nodes)-1)
	t.selected = nodes[pos]
	return t.selected
}

// Jump selects the nth node in visible order, counting from 1. Zero or an
// index past the end selects the last node.
func (t *Tree) Jump(n int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes := t.visible()
	if n <= 0 || n > len(nodes) {
		n = len(nodes)
	}
	t.selected = nodes[n-1]
	return t.selected
}

// Parent selects the parent of the selection, up to n levels.
func (t *Tree) Parent(n int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	for range max(n, 1) {
		if t.selected.parent == nil {
			break
		}
		t.selected = t.selected.parent
	}
	return t.selected
}

// Child selects the first child of the selection, down to n levels.
func (t *Tree) Child(n int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	for range max(n, 1) {
		if len(t.selected.Children) == 0 {
			break
		}
		t.selected = t.selected.Children[0]
	}
	return t.selected
}

// Yank copies the selection and up to n-1 following siblings into the
// clipboard. With subtree set the children are copied too.
func (t *Tree) Yank(n int, subtree bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes := []*Node{t.selected}
	if p := t.selected.parent; p != nil {
		i := t.selected.index()
		end := min(i+max(n, 1), len(p.Children))
		nodes = p.Children[i:end]
	}

	t.clipboard = t.clipboard[:0]
	for _, node := range nodes {
		t.clipboard = append(t.clipboard, copyNode(node, subtree))
	}
	return len(t.clipboard)
}

// copyNode returns a detached copy without IDs.
func copyNode(n *Node, subtree bool) *Node {
	c := &Node{Title: n.Title}
	if subtree {
		for _, child := range n.Children {
			cc := copyNode(child, true)
			cc.parent = c
			c.Children = append(c.Children, cc)
		}
	}
	return c
}

// Paste inserts the clipboard after the selection, n times, with fresh IDs.
// The last pasted node is selected.
func (t *Tree) Paste(n int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.clipboard) == 0 {
		return 0, ErrEmptyClipboard
	}

	pasted := 0
	for range max(n, 1) {
		for _, c := range t.clipboard {
			node := t.instantiate(c)
			if t.selected == t.root {
				t.appendChild(t.root, node)
			} else {
				t.insertAfter(t.selected, node)
			}
			t.selected = node
			pasted++
		}
	}
	return pasted, nil
}

func (t *Tree) instantiate(c *Node) *Node {
	n := t.newNode(c.Title)
	for _, child := range c.Children {
		t.appendChild(n, t.instantiate(child))
	}
	return n
}

// Indent makes the selection the last child of its previous sibling.
func (t *Tree) Indent() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.indent()
}

func (t *Tree) indent() error {
	n := t.selected
	if n == t.root {
		return ErrRootNode
	}
	i := n.index()
	if i == 0 {
		return ErrNoPreviousSibling
	}
	prev := n.parent.Children[i-1]
	t.detach(n)
	t.appendChild(prev, n)
	return nil
}

// Outdent makes the selection the sibling that follows its parent.
func (t *Tree) Outdent() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outdent()
}

func (t *Tree) outdent() error {
	n := t.selected
	if n == t.root || n.parent == t.root {
		return ErrRootNode
	}
	parent := n.parent
	t.detach(n)
	t.insertAfter(parent, n)
	return nil
}

// Shift indents (positive levels) or outdents (negative levels) the
// selection and returns how many levels were applied.
func (t *Tree) Shift(levels int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	step := t.indent
	if levels < 0 {
		step = t.outdent
		levels = -levels
	}
	done := 0
	for range levels {
		if err := step(); err != nil {
			if done == 0 {
				return 0, err
			}
			break
		}
		done++
	}
	return done, nil
}
