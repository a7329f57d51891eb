package outline

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/mindcmd/internal/command"
)

// Command categories.
const (
	CategoryNavigation = "Navigation"
	CategoryEdit       = "Edit"
	CategoryClipboard  = "Clipboard"
	CategoryView       = "View"
)

// SourceBuiltin is the registration source of the commands in this package.
const SourceBuiltin = "builtin"

// Commands returns the builtin outline commands. Each expects a *Tree as
// the invocation environment.
func Commands() []*command.Command {
	cmds := []*command.Command{
		// Navigation
		{
			Name:        "down",
			Aliases:     []string{"next"},
			Description: "Move the selection down",
			Category:    CategoryNavigation,
			Countable:   true,
			Execute:     withTree(moveBy(1)),
		},
		{
			Name:        "up",
			Aliases:     []string{"prev"},
			Description: "Move the selection up",
			Category:    CategoryNavigation,
			Countable:   true,
			Execute:     withTree(moveBy(-1)),
		},
		{
			Name:        "first",
			Description: "Select the first node",
			Category:    CategoryNavigation,
			Execute: withTree(func(_ context.Context, t *Tree, _ *command.Invocation) (command.Result, error) {
				return selected(t.Jump(1)), nil
			}),
		},
		{
			Name:        "last",
			Description: "Select the last node, or the Nth with a count",
			Category:    CategoryNavigation,
			Countable:   true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				return selected(t.Jump(inv.Count)), nil
			}),
		},
		{
			Name:        "parent",
			Description: "Select the parent node",
			Category:    CategoryNavigation,
			Countable:   true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				return selected(t.Parent(inv.CountOr(1))), nil
			}),
		},
		{
			Name:        "child",
			Description: "Select the first child node",
			Category:    CategoryNavigation,
			Countable:   true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				return selected(t.Child(inv.CountOr(1))), nil
			}),
		},
		{
			Name:        "select",
			Aliases:     []string{"goto"},
			Description: "Select a node by ID",
			Category:    CategoryNavigation,
			Examples:    []string{"select n3"},
			Args: []command.ArgSpec{
				{Name: "id", Type: command.ArgNodeID, Required: true, Description: "node to select"},
			},
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				n, err := t.Select(inv.Args.String("id"))
				if err != nil {
					return command.Result{}, err
				}
				return selected(n), nil
			}),
		},

		// Edit
		{
			Name:        "add",
			Aliases:     []string{"new"},
			Description: "Add a node after the selection",
			Category:    CategoryEdit,
			Examples:    []string{`add "Buy milk"`, `add "Details" --child`},
			Args: []command.ArgSpec{
				{Name: "text", Type: command.ArgString, Required: true, Description: "node title"},
				{Name: "child", Type: command.ArgBoolean, Default: false, Description: "add as the last child"},
			},
			Repeatable: true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				n := t.Add(inv.Args.String("text"), inv.Args.Bool("child"))
				return command.Successf("Added %s", n.Title).WithData(n.ID), nil
			}),
		},
		{
			Name:        "delete",
			Aliases:     []string{"rm"},
			Description: "Delete the selected node and its children",
			Category:    CategoryEdit,
			Guard:       notRoot,
			Repeatable:  true,
			Execute: withTree(func(_ context.Context, t *Tree, _ *command.Invocation) (command.Result, error) {
				n, err := t.Delete()
				if err != nil {
					return command.Result{}, err
				}
				return command.Successf("Deleted %s", n.Title), nil
			}),
		},
		{
			Name:        "delete-line",
			Description: "Delete the selected node and the next N-1",
			Category:    CategoryEdit,
			Guard:       notRoot,
			Countable:   true,
			Repeatable:  true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				n, err := t.DeleteN(inv.CountOr(1))
				if err != nil {
					return command.Result{}, err
				}
				return command.Successf("Deleted %s", plural(n, "node")), nil
			}),
		},
		{
			Name:        "rename",
			Aliases:     []string{"mv"},
			Description: "Rename the selected node",
			Category:    CategoryEdit,
			Examples:    []string{`rename "Weekly plan"`},
			Args: []command.ArgSpec{
				{Name: "text", Type: command.ArgString, Required: true, Description: "new title"},
			},
			Repeatable: true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				n := t.Rename(inv.Args.String("text"))
				return command.Successf("Renamed to %s", n.Title), nil
			}),
		},
		{
			Name:        "indent",
			Description: "Move the selection under its previous sibling",
			Category:    CategoryEdit,
			Guard:       notRoot,
			Countable:   true,
			Repeatable:  true,
			Execute:     withTree(shift(1)),
		},
		{
			Name:        "outdent",
			Description: "Move the selection out of its parent",
			Category:    CategoryEdit,
			Guard:       notRoot,
			Countable:   true,
			Repeatable:  true,
			Execute:     withTree(shift(-1)),
		},
		{
			Name:        "format",
			Description: "Apply a list style to the children of the selection",
			Category:    CategoryEdit,
			Examples:    []string{"format bullet", "format --style plain"},
			Args: []command.ArgSpec{
				{Name: "style", Type: command.ArgString, Default: string(StyleNumbered), Description: "numbered, bullet or plain"},
			},
			Repeatable: true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				style, err := ParseStyle(inv.Args.String("style"))
				if err != nil {
					return command.Result{}, err
				}
				n := t.Format(style, 0)
				return command.Successf("Formatted %s as %s", plural(n, "node"), style), nil
			}),
		},
		{
			Name:        "number-list",
			Description: "Number the children of the selection, or the first N",
			Category:    CategoryEdit,
			Countable:   true,
			Repeatable:  true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				n := t.Format(StyleNumbered, inv.Count)
				return command.Successf("Numbered %s", plural(n, "node")), nil
			}),
		},

		// Clipboard
		{
			Name:        "yank-line",
			Description: "Copy the selected node and the next N-1",
			Category:    CategoryClipboard,
			Countable:   true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				n := t.Yank(inv.CountOr(1), false)
				return command.Successf("Yanked %s", plural(n, "node")), nil
			}),
		},
		{
			Name:        "yank-subtree",
			Description: "Copy the selected node with its children",
			Category:    CategoryClipboard,
			Execute: withTree(func(_ context.Context, t *Tree, _ *command.Invocation) (command.Result, error) {
				t.Yank(1, true)
				return command.SuccessWithMessage("Yanked subtree"), nil
			}),
		},
		{
			Name:        "paste",
			Description: "Paste the clipboard after the selection",
			Category:    CategoryClipboard,
			Guard:       hasClipboard,
			Countable:   true,
			Repeatable:  true,
			Execute: withTree(func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
				n, err := t.Paste(inv.CountOr(1))
				if err != nil {
					return command.Result{}, err
				}
				return command.Successf("Pasted %s", plural(n, "node")), nil
			}),
		},

		// View
		{
			Name:        "center",
			Description: "Center the view on the selection",
			Category:    CategoryView,
			Execute: withTree(func(_ context.Context, t *Tree, _ *command.Invocation) (command.Result, error) {
				n := t.Selected()
				return command.Successf("Centered on %s", n.Title).WithData(n.ID), nil
			}),
		},
		{
			Name:        "show",
			Aliases:     []string{"ls"},
			Description: "Print the outline",
			Category:    CategoryView,
			Execute: withTree(func(_ context.Context, t *Tree, _ *command.Invocation) (command.Result, error) {
				out := t.Render()
				return command.SuccessWithMessage(out).WithData(t.Titles()), nil
			}),
		},
	}

	for _, c := range cmds {
		c.Source = SourceBuiltin
	}
	return cmds
}

type treeFunc func(ctx context.Context, t *Tree, inv *command.Invocation) (command.Result, error)

// withTree resolves the tree from the invocation environment.
func withTree(fn treeFunc) command.ExecuteFunc {
	return func(ctx context.Context, inv *command.Invocation) (command.Result, error) {
		t, ok := inv.Env.(*Tree)
		if !ok || t == nil {
			return command.Result{}, ErrMissingTree
		}
		return fn(ctx, t, inv)
	}
}

func moveBy(dir int) treeFunc {
	return func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
		return selected(t.Move(dir * inv.CountOr(1))), nil
	}
}

func shift(dir int) treeFunc {
	return func(_ context.Context, t *Tree, inv *command.Invocation) (command.Result, error) {
		n, err := t.Shift(dir * inv.CountOr(1))
		if err != nil {
			if errors.Is(err, ErrNoPreviousSibling) {
				return command.Failure("Nothing to indent under"), nil
			}
			return command.Result{}, err
		}
		return command.Successf("Shifted %s", plural(n, "level")), nil
	}
}

func notRoot(_ context.Context, inv *command.Invocation) bool {
	t, ok := inv.Env.(*Tree)
	return ok && t != nil && !t.SelectedIsRoot()
}

func hasClipboard(_ context.Context, inv *command.Invocation) bool {
	t, ok := inv.Env.(*Tree)
	return ok && t != nil && t.HasClipboard()
}

func selected(n *Node) command.Result {
	return command.Successf("Selected %s", n.Title).WithData(n.ID)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
