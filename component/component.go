// Package component provides an immutable, type-keyed container for
// conveniently turning optional fields of structs on and off: a struct
// embeds a Set, and code paths query it for the types they care about
// without the struct paying for fields that are absent.
package component

import "reflect"

// Set is an immutable collection of values keyed by their type. The zero
// value is the empty set.
type Set struct {
	items map[reflect.Type]any
}

// Empty is the set containing no components.
var Empty = Set{}

// With returns a copy of s that also contains value, keyed by its type.
// A value of the same type already in s is replaced.
func With[T any](s Set, value T) Set {
	items := make(map[reflect.Type]any, len(s.items)+1)
	for k, v := range s.items {
		items[k] = v
	}
	items[reflect.TypeOf((*T)(nil)).Elem()] = value
	return Set{items: items}
}

// Get retrieves the component of type T, if the set contains one.
func Get[T any](s Set) (T, bool) {
	v, ok := s.items[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Has reports whether the set contains a component of type T.
func Has[T any](s Set) bool {
	_, ok := s.items[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Len returns the number of components in the set.
func (s Set) Len() int {
	return len(s.items)
}
