package form

import (
	"fmt"
	"sort"
)

// Entry names a child of a group.
type Entry struct {
	Name string
	Node Node
}

// Field is shorthand for Entry{Name: name, Node: node}.
func Field(name string, node Node) Entry {
	return Entry{Name: name, Node: node}
}

// Group is a named collection of nodes validated as a unit.
type Group struct {
	base
	names      []string
	children   map[string]Node
	validators []GroupValidator
}

// NewGroup creates a group with the given children in declaration order.
func NewGroup(entries []Entry, validators ...GroupValidator) *Group {
	g := &Group{
		names:      make([]string, 0, len(entries)),
		children:   make(map[string]Node, len(entries)),
		validators: validators,
	}
	for _, e := range entries {
		e.Node.bind(g, e.Name)
		g.names = append(g.names, e.Name)
		g.children[e.Name] = e.Node
	}
	g.validate()
	return g
}

// Child returns the named child or nil.
func (g *Group) Child(name string) Node {
	return g.children[name]
}

// Names returns the child names in declaration order.
func (g *Group) Names() []string {
	return append([]string(nil), g.names...)
}

func (g *Group) childPath(name string) string {
	return joinPath(g.Path(), name)
}

// Value returns the group's values keyed by child name.
func (g *Group) Value() any {
	out := make(map[string]any, len(g.names))
	for _, name := range g.names {
		out[name] = g.children[name].Value()
	}
	return out
}

func (g *Group) Valid() bool {
	if len(g.errors) > 0 {
		return false
	}
	for _, name := range g.names {
		if !g.children[name].Valid() {
			return false
		}
	}
	return true
}

func (g *Group) Touched() bool {
	for _, name := range g.names {
		if g.children[name].Touched() {
			return true
		}
	}
	return false
}

func (g *Group) Dirty() bool {
	for _, name := range g.names {
		if g.children[name].Dirty() {
			return true
		}
	}
	return false
}

func (g *Group) MarkTouched() {
	for _, name := range g.names {
		markTouchedSilently(g.children[name])
	}
	g.UpdateValueAndValidity()
}

func (g *Group) UpdateValueAndValidity() {
	g.validate()
	g.updateParent()
}

// SetValue assigns every value in the tree from a nested map. Every child must
// be present and no unknown keys are allowed; arrays must have the same
// length. The whole shape is checked before anything changes, so a failed call
// leaves the group as it was.
func (g *Group) SetValue(value any) error {
	if err := g.checkShape(value, g.Path()); err != nil {
		return err
	}
	g.assign(value)
	g.updateParent()
	return nil
}

func (g *Group) validate() {
	var errs Errors
	for _, v := range g.validators {
		errs = errs.merge(v(g))
	}
	g.errors = errs
}

func (g *Group) checkShape(value any, path string) error {
	m, ok := asMap(value)
	if !ok {
		return fmt.Errorf("%w: %s must be an object", ErrShape, displayPath(path))
	}
	for _, name := range g.names {
		v, present := m[name]
		if !present {
			return fmt.Errorf("%w: missing value for %s", ErrShape, joinPath(path, name))
		}
		if err := g.children[name].checkShape(v, joinPath(path, name)); err != nil {
			return err
		}
	}
	if len(m) != len(g.names) {
		unknown := make([]string, 0, len(m))
		for k := range m {
			if _, known := g.children[k]; !known {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown field %s", ErrShape, joinPath(path, unknown[0]))
	}
	return nil
}

func (g *Group) assign(value any) {
	m, _ := asMap(value)
	for _, name := range g.names {
		g.children[name].assign(m[name])
	}
	g.validate()
}

func markTouchedSilently(n Node) {
	switch v := n.(type) {
	case *Control:
		v.touched = true
	case *Group:
		for _, name := range v.names {
			markTouchedSilently(v.children[name])
		}
		v.validate()
	case *Array:
		for _, item := range v.items {
			markTouchedSilently(item)
		}
	}
}

func displayPath(path string) string {
	if path == "" {
		return "form value"
	}
	return path
}

// asMap accepts map[string]any as well as the map[any]any that generic CBOR
// decoding produces for nested objects.
func asMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = v
		}
		return out, true
	}
	return nil, false
}
