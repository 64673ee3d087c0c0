// Package salary turns a salary range, or one end of it, into a single
// monthly figure.
package salary

import "math"

const (
	// Multipliers applied when only one bound of the range is known.
	upperOnlyFactor = 0.8
	lowerOnlyFactor = 1.2
)

// Predict estimates the average salary for a range. A missing lower bound
// scales the upper one down, a missing upper bound scales the lower one up.
// The result is truncated towards zero. ok is false when neither bound is set.
func Predict(from, to *float64) (estimate int, ok bool) {
	switch {
	case from != nil && to != nil:
		return truncate((*from + *to) / 2), true
	case to != nil:
		return truncate(*to * upperOnlyFactor), true
	case from != nil:
		return truncate(*from * lowerOnlyFactor), true
	default:
		return 0, false
	}
}

func truncate(v float64) int {
	return int(math.Trunc(v))
}
