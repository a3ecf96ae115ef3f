package form

import (
	"fmt"
	"strconv"
)

// Array is an ordered, growable list of nodes.
type Array struct {
	base
	items []Node
}

// NewArray creates an array holding items in order.
func NewArray(items ...Node) *Array {
	a := &Array{}
	for _, item := range items {
		a.attach(item)
	}
	return a
}

func (a *Array) attach(item Node) {
	item.bind(a, strconv.Itoa(len(a.items)))
	a.items = append(a.items, item)
}

// Push appends item to the end of the array and re-validates the ancestors.
func (a *Array) Push(item Node) {
	a.attach(item)
	a.UpdateValueAndValidity()
}

// Len returns the number of entries.
func (a *Array) Len() int { return len(a.items) }

// At returns the entry at index i.
func (a *Array) At(i int) Node { return a.items[i] }

func (a *Array) childPath(name string) string {
	return joinPath(a.Path(), name)
}

func (a *Array) Value() any {
	out := make([]any, 0, len(a.items))
	for _, item := range a.items {
		out = append(out, item.Value())
	}
	return out
}

func (a *Array) Valid() bool {
	for _, item := range a.items {
		if !item.Valid() {
			return false
		}
	}
	return true
}

func (a *Array) Touched() bool {
	for _, item := range a.items {
		if item.Touched() {
			return true
		}
	}
	return false
}

func (a *Array) Dirty() bool {
	for _, item := range a.items {
		if item.Dirty() {
			return true
		}
	}
	return false
}

func (a *Array) MarkTouched() {
	markTouchedSilently(a)
	a.updateParent()
}

func (a *Array) UpdateValueAndValidity() {
	a.updateParent()
}

func (a *Array) checkShape(value any, path string) error {
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%w: %s must be a list", ErrShape, displayPath(path))
	}
	if len(list) != len(a.items) {
		return fmt.Errorf("%w: %s has %d entries, got %d", ErrShape, displayPath(path), len(a.items), len(list))
	}
	for i, item := range a.items {
		if err := item.checkShape(list[i], joinPath(path, strconv.Itoa(i))); err != nil {
			return err
		}
	}
	return nil
}

func (a *Array) assign(value any) {
	list, _ := value.([]any)
	for i, item := range a.items {
		item.assign(list[i])
	}
}
