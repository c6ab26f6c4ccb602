package domain

import (
	"cmp"
	"slices"
)

// MaxOf returns the largest element, or false when values is empty
func MaxOf[T cmp.Ordered](values []T) (T, bool) {
	if len(values) == 0 {
		var zero T
		return zero, false
	}
	return slices.Max(values), true
}
