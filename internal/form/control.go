package form

import "fmt"

// TypeGuard reports whether a control may hold value.
type TypeGuard func(value any) bool

// String accepts strings only.
func String(value any) bool {
	_, ok := value.(string)
	return ok
}

// Bool accepts booleans only.
func Bool(value any) bool {
	_, ok := value.(bool)
	return ok
}

// Control is a single named, validated value.
type Control struct {
	base
	value      any
	touched    bool
	dirty      bool
	validators []Validator
	guard      TypeGuard
	listeners  []func(value any)
}

// NewControl creates a control holding initial and validates it once.
func NewControl(initial any, validators ...Validator) *Control {
	c := &Control{value: initial, validators: validators}
	c.validate()
	return c
}

// Guard restricts the values the control accepts. Assignments of any other
// value fail with ErrShape.
func (c *Control) Guard(guard TypeGuard) *Control {
	c.guard = guard
	return c
}

// Accepts returns ErrShape when value fails the control's type guard.
func (c *Control) Accepts(value any) error {
	return c.checkShape(value, c.Path())
}

func (c *Control) Value() any    { return c.value }
func (c *Control) Valid() bool   { return len(c.errors) == 0 }
func (c *Control) Touched() bool { return c.touched }
func (c *Control) Dirty() bool   { return c.dirty }

// Subscribe registers fn to receive every value change, in order, after the
// control has re-validated and before its ancestors have.
func (c *Control) Subscribe(fn func(value any)) {
	c.listeners = append(c.listeners, fn)
}

// SetValue replaces the value programmatically. Interaction flags are left alone.
func (c *Control) SetValue(value any) {
	c.value = value
	c.UpdateValueAndValidity()
}

// Input records a user edit: the control becomes dirty and takes value.
func (c *Control) Input(value any) {
	c.dirty = true
	c.SetValue(value)
}

func (c *Control) MarkTouched() {
	c.touched = true
	c.updateParent()
}

// SetValidators replaces the validator set. It does not re-validate; call
// UpdateValueAndValidity afterwards.
func (c *Control) SetValidators(validators ...Validator) {
	c.validators = validators
}

// ClearValidators removes every validator. It does not re-validate.
func (c *Control) ClearValidators() {
	c.validators = nil
}

// HasValidators reports whether any validator is attached.
func (c *Control) HasValidators() bool {
	return len(c.validators) > 0
}

func (c *Control) UpdateValueAndValidity() {
	c.validate()
	c.emit()
	c.updateParent()
}

func (c *Control) validate() {
	var errs Errors
	for _, v := range c.validators {
		errs = errs.merge(v(c.value))
	}
	c.errors = errs
}

func (c *Control) emit() {
	for _, fn := range c.listeners {
		fn(c.value)
	}
}

func (c *Control) checkShape(value any, path string) error {
	if c.guard != nil && !c.guard(value) {
		return fmt.Errorf("%w: %s does not accept %T", ErrShape, path, value)
	}
	return nil
}

func (c *Control) assign(value any) {
	c.value = value
	c.validate()
	c.emit()
}
