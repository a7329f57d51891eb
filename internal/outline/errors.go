package outline

import "errors"

// Tree errors.
var (
	// ErrMissingTree indicates the invocation environment is not a *Tree.
	ErrMissingTree = errors.New("outline: environment is not an outline tree")

	// ErrNodeNotFound indicates no node has the requested ID.
	ErrNodeNotFound = errors.New("outline: node not found")

	// ErrRootNode indicates an operation that the root node cannot take part in.
	ErrRootNode = errors.New("outline: operation not allowed on the root node")

	// ErrNoPreviousSibling indicates indent without a sibling to move under.
	ErrNoPreviousSibling = errors.New("outline: no previous sibling")

	// ErrEmptyClipboard indicates paste with nothing yanked.
	ErrEmptyClipboard = errors.New("outline: clipboard is empty")

	// ErrUnknownStyle indicates an unsupported list style.
	ErrUnknownStyle = errors.New("outline: unknown list style")
)
