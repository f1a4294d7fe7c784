// Package defaultutil resolves optional values against an ordered list of fallbacks.
//
// Each helper walks its candidates in priority order and returns the first one that counts as
// set. What "set" means differs per helper, so the default policy of a field is visible at the
// call site instead of being buried in chained conditionals.
package defaultutil

// Coalesce returns the first candidate that is not the zero value of T, or the zero value when
// none is set. Zero counts as unset, so Coalesce(0, 1) is 1.
func Coalesce[T comparable](candidates ...T) T {
	var zero T
	for _, c := range candidates {
		if c != zero {
			return c
		}
	}
	return zero
}

// CoalesceSlice returns the first non-nil candidate. An empty but non-nil slice counts as set,
// so a publisher that explicitly declares an empty list keeps it.
func CoalesceSlice[T any](candidates ...[]T) []T {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// CoalescePtr returns the first non-nil candidate.
func CoalescePtr[T any](candidates ...*T) *T {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
