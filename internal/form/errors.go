package form

import "errors"

// Code names a validation failure attached to a control or group.
type Code string

// Validation codes produced by the built-in validators.
const (
	CodeRequired  Code = "required"
	CodeEmail     Code = "email"
	CodeNaN       Code = "nan"
	CodeRange     Code = "range"
	CodeMatch     Code = "match"
	CodeMinLength Code = "minlength"
	CodeMaxLength Code = "maxlength"
)

// Errors is the set of active codes on a node, in validator order.
type Errors []Code

// Has reports whether code is active.
func (e Errors) Has(code Code) bool {
	for _, c := range e {
		if c == code {
			return true
		}
	}
	return false
}

// Strings returns the codes as plain strings. It never returns nil.
func (e Errors) Strings() []string {
	out := make([]string, 0, len(e))
	for _, c := range e {
		out = append(out, string(c))
	}
	return out
}

func (e Errors) merge(other Errors) Errors {
	for _, c := range other {
		if !e.Has(c) {
			e = append(e, c)
		}
	}
	return e
}

// Operational errors.
var (
	// ErrShape indicates a strict assignment whose value does not match the form structure.
	ErrShape = errors.New("value does not match form shape")

	// ErrFieldNotFound indicates a path that does not resolve to a node.
	ErrFieldNotFound = errors.New("field not found")
)
