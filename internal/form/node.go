// Package form implements a small reactive form model: controls, groups and
// arrays with per-node validators, interaction flags and value-change
// subscriptions.
//
// A form tree is not safe for concurrent use. Callers serialize access, usually
// with one mutex per form that also guards the Debouncer callbacks.
package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a control, group or array in a form tree.
type Node interface {
	// Path returns the dotted path from the root ("" for the root itself).
	Path() string
	Value() any
	Errors() Errors
	// Valid reports whether the node and all of its descendants have no errors.
	Valid() bool
	Touched() bool
	Dirty() bool
	// MarkTouched records a blur on the node (and every descendant for
	// containers) and re-validates the ancestors.
	MarkTouched()
	// UpdateValueAndValidity re-runs the node's validators, notifies its
	// subscribers and then updates its ancestors.
	UpdateValueAndValidity()

	bind(parent container, name string)
	checkShape(value any, path string) error
	assign(value any)
}

type container interface {
	Node
	childPath(name string) string
}

// base holds the bookkeeping shared by all node kinds.
type base struct {
	parent container
	name   string
	errors Errors
}

func (b *base) bind(parent container, name string) {
	b.parent = parent
	b.name = name
}

func (b *base) Path() string {
	if b.parent == nil {
		return ""
	}
	return b.parent.childPath(b.name)
}

func (b *base) Errors() Errors {
	return b.errors
}

func (b *base) updateParent() {
	if b.parent != nil {
		b.parent.UpdateValueAndValidity()
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Get resolves a dotted path below root. Array entries are addressed by index,
// e.g. "addresses.0.city".
func Get(root Node, path string) (Node, error) {
	if path == "" {
		return root, nil
	}
	node := root
	for _, part := range strings.Split(path, ".") {
		switch n := node.(type) {
		case *Group:
			child := n.Child(part)
			if child == nil {
				return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, path)
			}
			node = child
		case *Array:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= n.Len() {
				return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, path)
			}
			node = n.At(idx)
		default:
			return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, path)
		}
	}
	return node, nil
}

// Walk visits root and every descendant in declaration order, parents first.
func Walk(root Node, fn func(Node)) {
	fn(root)
	switch n := root.(type) {
	case *Group:
		for _, name := range n.names {
			Walk(n.children[name], fn)
		}
	case *Array:
		for _, item := range n.items {
			Walk(item, fn)
		}
	}
}
