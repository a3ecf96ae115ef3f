package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddress() *Group {
	return NewGroup([]Entry{
		Field("city", NewControl("")),
		Field("zip", NewControl("")),
	})
}

func newTestTree() (*Group, *Group, *Array) {
	passwords := NewGroup([]Entry{
		Field("password", NewControl("", Required())),
		Field("confirm", NewControl("", Required())),
	}, FieldsMatch("password", "confirm"))
	list := NewArray(newAddress())
	root := NewGroup([]Entry{
		Field("name", NewControl("", Required(), MinLength(3))),
		Field("passwords", passwords),
		Field("rating", NewControl(nil, Range(1, 10))),
		Field("addresses", list),
	})
	return root, passwords, list
}

func TestControlInitialValidation(t *testing.T) {
	root, _, _ := newTestTree()

	name, err := Get(root, "name")
	require.NoError(t, err)
	assert.Equal(t, Errors{CodeRequired}, name.Errors())
	assert.False(t, name.Touched())
	assert.False(t, name.Dirty())
	assert.False(t, root.Valid())
}

func TestControlInputMarksDirtyAndValidates(t *testing.T) {
	root, _, _ := newTestTree()
	node, err := Get(root, "name")
	require.NoError(t, err)
	name := node.(*Control)

	name.Input("Jo")
	assert.True(t, name.Dirty())
	assert.Equal(t, Errors{CodeMinLength}, name.Errors())

	name.Input("Jack")
	assert.Nil(t, name.Errors())
	assert.True(t, root.Dirty())
}

func TestSetValueDoesNotMarkDirty(t *testing.T) {
	c := NewControl("", Required())
	c.SetValue("x")

	assert.False(t, c.Dirty())
	assert.True(t, c.Valid())
}

func TestSubscribersObserveChangesInOrder(t *testing.T) {
	c := NewControl("")
	var seen []any
	var errsAtNotify []Errors
	c.SetValidators(Required())
	c.Subscribe(func(v any) {
		seen = append(seen, v)
		errsAtNotify = append(errsAtNotify, c.Errors())
	})

	c.Input("a")
	c.Input("")
	c.SetValue("b")

	assert.Equal(t, []any{"a", "", "b"}, seen)
	assert.Equal(t, []Errors{nil, {CodeRequired}, nil}, errsAtNotify, "control validates before notifying")
}

func TestPasswordMatchSuppressedUntilBothInteracted(t *testing.T) {
	root, passwords, _ := newTestTree()
	password := passwords.Child("password").(*Control)
	confirm := passwords.Child("confirm").(*Control)

	password.Input("a")
	assert.Nil(t, passwords.Errors(), "confirm still pristine")

	confirm.Input("b")
	assert.Equal(t, Errors{CodeMatch}, passwords.Errors())
	assert.False(t, root.Valid())

	confirm.Input("a")
	assert.Nil(t, passwords.Errors())
}

func TestPasswordMatchCountsTouchAsInteraction(t *testing.T) {
	_, passwords, _ := newTestTree()
	password := passwords.Child("password").(*Control)
	confirm := passwords.Child("confirm").(*Control)

	password.Input("secret")
	confirm.MarkTouched()

	assert.Equal(t, Errors{CodeMatch}, passwords.Errors())
}

func TestDynamicValidators(t *testing.T) {
	c := NewControl("")
	assert.True(t, c.Valid())

	c.SetValidators(Required(), MaxLength(30))
	assert.True(t, c.Valid(), "validators apply on the next update")
	c.UpdateValueAndValidity()
	assert.Equal(t, Errors{CodeRequired}, c.Errors())
	assert.True(t, c.HasValidators())

	c.ClearValidators()
	c.UpdateValueAndValidity()
	assert.True(t, c.Valid())
	assert.Equal(t, "", c.Value(), "value is kept")
}

func TestArrayPushAppendsInOrder(t *testing.T) {
	root, _, list := newTestTree()
	first, err := Get(root, "addresses.0.city")
	require.NoError(t, err)
	first.(*Control).Input("Cardiff")

	list.Push(newAddress())

	assert.Equal(t, 2, list.Len())
	assert.Equal(t, "Cardiff", list.At(0).(*Group).Child("city").Value())
	assert.Equal(t, map[string]any{"city": "", "zip": ""}, list.At(1).Value())

	second, err := Get(root, "addresses.1.zip")
	require.NoError(t, err)
	assert.Equal(t, "addresses.1.zip", second.Path())
}

func TestGetUnknownPaths(t *testing.T) {
	root, _, _ := newTestTree()

	for _, path := range []string{"missing", "name.extra", "addresses.1", "addresses.x", "addresses.-1", "passwords.nope"} {
		_, err := Get(root, path)
		assert.True(t, errors.Is(err, ErrFieldNotFound), "path %q", path)
	}

	node, err := Get(root, "")
	require.NoError(t, err)
	assert.Same(t, root, node)
}

func TestGroupSetValueStrict(t *testing.T) {
	root, passwords, _ := newTestTree()

	value := map[string]any{
		"name":      "Jack",
		"passwords": map[string]any{"password": "x", "confirm": "y"},
		"rating":    nil,
		"addresses": []any{map[string]any{"city": "Cardiff", "zip": "CF10"}},
	}
	require.NoError(t, root.SetValue(value))

	assert.Equal(t, value, root.Value())
	assert.False(t, root.Dirty(), "programmatic assignment is not an interaction")
	assert.Nil(t, passwords.Errors(), "mismatch suppressed while pristine")
	assert.True(t, root.Valid())
}

func TestGroupSetValueShapeErrorsLeaveFormUntouched(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "not an object", value: "x"},
		{name: "missing field", value: map[string]any{
			"name":      "Jack",
			"rating":    nil,
			"addresses": []any{map[string]any{"city": "", "zip": ""}},
		}},
		{name: "unknown field", value: map[string]any{
			"name":      "Jack",
			"passwords": map[string]any{"password": "", "confirm": ""},
			"rating":    nil,
			"addresses": []any{map[string]any{"city": "", "zip": ""}},
			"extra":     true,
		}},
		{name: "array length differs", value: map[string]any{
			"name":      "Jack",
			"passwords": map[string]any{"password": "", "confirm": ""},
			"rating":    nil,
			"addresses": []any{},
		}},
		{name: "nested missing field", value: map[string]any{
			"name":      "Jack",
			"passwords": map[string]any{"password": "", "confirm": ""},
			"rating":    nil,
			"addresses": []any{map[string]any{"city": "Cardiff"}},
		}},
		{name: "array not a list", value: map[string]any{
			"name":      "Jack",
			"passwords": map[string]any{"password": "", "confirm": ""},
			"rating":    nil,
			"addresses": map[string]any{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _, _ := newTestTree()
			before := root.Value()

			err := root.SetValue(tt.value)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShape))
			assert.Equal(t, before, root.Value())
		})
	}
}

func TestSetValueAcceptsGenericMaps(t *testing.T) {
	g := NewGroup([]Entry{
		Field("inner", NewGroup([]Entry{Field("a", NewControl(""))})),
	})

	err := g.SetValue(map[any]any{"inner": map[any]any{"a": "b"}})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"inner": map[string]any{"a": "b"}}, g.Value())
}

func TestMarkTouchedOnGroup(t *testing.T) {
	root, passwords, list := newTestTree()

	passwords.MarkTouched()
	assert.True(t, passwords.Child("password").Touched())
	assert.True(t, passwords.Child("confirm").Touched())
	assert.False(t, list.Touched())

	root.MarkTouched()
	assert.True(t, list.At(0).(*Group).Child("zip").Touched())
}

func TestWalkVisitsParentsFirst(t *testing.T) {
	root, _, _ := newTestTree()

	var paths []string
	Walk(root, func(n Node) { paths = append(paths, n.Path()) })

	assert.Equal(t, []string{
		"",
		"name",
		"passwords",
		"passwords.password",
		"passwords.confirm",
		"rating",
		"addresses",
		"addresses.0",
		"addresses.0.city",
		"addresses.0.zip",
	}, paths)
}

func TestGuardedControlRejectsOtherTypes(t *testing.T) {
	g := NewGroup([]Entry{
		Field("name", NewControl("").Guard(String)),
		Field("opt", NewControl(true).Guard(Bool)),
		Field("any", NewControl(nil)),
	})
	before := g.Value()

	err := g.SetValue(map[string]any{"name": "Jack", "opt": "yes", "any": 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShape))
	assert.Contains(t, err.Error(), "opt")
	assert.Equal(t, before, g.Value())

	require.NoError(t, g.SetValue(map[string]any{"name": "Jack", "opt": false, "any": 1}))
	assert.True(t, errors.Is(g.Child("name").(*Control).Accepts(42.0), ErrShape))
	assert.NoError(t, g.Child("any").(*Control).Accepts(42.0))
}
