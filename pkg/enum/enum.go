package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum map[string]T
}

// New registers value under its printed form. Call it from package level
// var blocks only, the registry is not guarded.
func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	if _, ok := enumManager[t.String()]; !ok {
		enumManager[t.String()] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[t.String()].(enum[T]).toEnum[fmt.Sprint(value)] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).String()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}
