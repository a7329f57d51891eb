// Package outline is a small in-memory node tree used as the host
// environment for the builtin commands.
//
// A Tree holds titled nodes, one selected node and a clipboard. The
// commands returned by Commands find the tree through Invocation.Env:
//
//	tree := outline.NewTree("Notes")
//	reg := registry.New()
//	for _, cmd := range outline.Commands() {
//		reg.Register(cmd)
//	}
//	d := dispatcher.New(reg, dispatcher.DefaultConfig())
//	d.Execute(ctx, `add "Groceries"`, tree, dispatcher.Options{})
//
// Navigation works on the visible order, which is a pre-order walk of the
// whole tree.
package outline
