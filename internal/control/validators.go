package control

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidatorFunc returns the error messages for value, or none when valid.
type ValidatorFunc[T comparable] func(name string, value T) []string

// Validator is a named validation rule. Adding a validator with an ID
// that is already present replaces it.
type Validator[T comparable] struct {
	ID string
	Fn ValidatorFunc[T]
}

// Required rejects empty values.
func Required[T comparable]() Validator[T] {
	return Validator[T]{
		ID: "required",
		Fn: func(name string, v T) []string {
			if isEmpty(v) {
				return []string{name + " is required"}
			}
			return nil
		},
	}
}

// Numeric rejects non-empty values that are not numbers.
func Numeric[T comparable]() Validator[T] {
	return Validator[T]{
		ID: "numeric",
		Fn: func(name string, v T) []string {
			if isEmpty(v) {
				return nil
			}
			if _, ok := toFloat(v); !ok {
				return []string{name + " must be numeric"}
			}
			return nil
		},
	}
}

// Max rejects numeric values greater than limit.
func Max[T comparable](limit float64) Validator[T] {
	return Validator[T]{
		ID: "max",
		Fn: func(name string, v T) []string {
			if isEmpty(v) {
				return nil
			}
			if f, ok := toFloat(v); ok && f > limit {
				return []string{fmt.Sprintf("%s cannot exceed %s", name, strconv.FormatFloat(limit, 'f', -1, 64))}
			}
			return nil
		},
	}
}

func isEmpty[T comparable](v T) bool {
	var zero T
	if v == zero {
		return true
	}
	switch x := any(v).(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}
