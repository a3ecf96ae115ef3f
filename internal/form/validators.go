package form

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator inspects a control value and returns the codes it violates.
type Validator func(value any) Errors

// GroupValidator inspects a whole group and returns the codes it violates.
type GroupValidator func(g *Group) Errors

var checker = validator.New()

// fails reports whether checker rejects value under tag.
func fails(value any, tag string) bool {
	return checker.Var(value, tag) != nil
}

// Required fails for null, empty strings and empty lists.
func Required() Validator {
	return func(value any) Errors {
		var empty bool
		switch v := value.(type) {
		case nil:
			empty = true
		case string:
			empty = fails(v, "required")
		case []any:
			empty = fails(v, "min=1")
		}
		if empty {
			return Errors{CodeRequired}
		}
		return nil
	}
}

// MinLength fails for non-empty strings shorter than n characters. Empty
// values are left to Required.
func MinLength(n int) Validator {
	tag := "min=" + strconv.Itoa(n)
	return func(value any) Errors {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if fails(s, tag) {
			return Errors{CodeMinLength}
		}
		return nil
	}
}

// MaxLength fails for strings longer than n characters.
func MaxLength(n int) Validator {
	tag := "max=" + strconv.Itoa(n)
	return func(value any) Errors {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if fails(s, tag) {
			return Errors{CodeMaxLength}
		}
		return nil
	}
}

// Email fails for non-empty values that are not a well-formed address.
func Email() Validator {
	return func(value any) Errors {
		if isEmpty(value) {
			return nil
		}
		s, ok := value.(string)
		if !ok || fails(s, "email") {
			return Errors{CodeEmail}
		}
		return nil
	}
}

// Range reports nan for a non-null value that is not a number and range for a
// number outside [min, max]. Null passes.
func Range(min, max float64) Validator {
	return func(value any) Errors {
		if value == nil {
			return nil
		}
		n, ok := toNumber(value)
		if !ok {
			return Errors{CodeNaN}
		}
		if n < min || n > max {
			return Errors{CodeRange}
		}
		return nil
	}
}

// MatchInput is one side of a match comparison.
type MatchInput struct {
	Value      any
	Interacted bool
}

// MatchResult is the outcome of Match.
type MatchResult int

const (
	MatchValid MatchResult = iota
	MatchMismatch
)

// Match compares two sibling values. While either side has not been interacted
// with the result is MatchValid.
func Match(a, b MatchInput) MatchResult {
	if !a.Interacted || !b.Interacted {
		return MatchValid
	}
	if !reflect.DeepEqual(a.Value, b.Value) {
		return MatchMismatch
	}
	return MatchValid
}

// FieldsMatch adapts Match to a group validator over two named children.
// A child counts as interacted once it is dirty or touched.
func FieldsMatch(first, second string) GroupValidator {
	return func(g *Group) Errors {
		a, b := g.Child(first), g.Child(second)
		if a == nil || b == nil {
			return nil
		}
		if Match(matchInput(a), matchInput(b)) == MatchMismatch {
			return Errors{CodeMatch}
		}
		return nil
	}
}

func matchInput(n Node) MatchInput {
	return MatchInput{Value: n.Value(), Interacted: n.Dirty() || n.Touched()}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	}
	return false
}

// toNumber coerces numeric values and numeric strings. A blank string counts
// as zero. NaN is never a number.
func toNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
