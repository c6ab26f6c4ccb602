// Package collections holds small helpers for building maps inline.
package collections

// Pair is a key/value entry for MapOf
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// P builds a Pair
func P[K comparable, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

// NewMap returns an empty map for the given key and value types
func NewMap[K comparable, V any]() map[K]V {
	return make(map[K]V)
}

// MapOf inserts pairs in order; a repeated key keeps the last value
func MapOf[K comparable, V any](pairs ...Pair[K, V]) map[K]V {
	m := make(map[K]V, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}
