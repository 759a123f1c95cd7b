// Package partition provides a stable two-group partition for annotated lists
package partition

// Stable splits xs into the elements matching pred and the rest, preserving
// relative order within each group, and returns them concatenated with the
// matching group first when matchesFirst is true (last otherwise)
// the input slice is never mutated
func Stable[T any](xs []T, pred func(T) bool, matchesFirst bool) []T {
	if len(xs) < 2 {
		return append([]T(nil), xs...)
	}

	match := make([]T, 0, len(xs))
	rest := make([]T, 0, len(xs))
	for _, x := range xs {
		if pred(x) {
			match = append(match, x)
		} else {
			rest = append(rest, x)
		}
	}

	out := make([]T, 0, len(xs))
	if matchesFirst {
		out = append(out, match...)
		return append(out, rest...)
	}
	out = append(out, rest...)
	return append(out, match...)
}
