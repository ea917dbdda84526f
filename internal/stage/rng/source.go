// Package rng provides the deterministic random source every generation draw
// flows through. One source is created per generation call; identical seeds
// produce identical draw sequences.
package rng

// Source produces the random values a generation pass consumes.
//
// Implementations need not be safe for concurrent use. Each generation call
// owns its source for the duration of the call.
type Source interface {
	// Next returns a uniformly distributed float64 in [0, 1).
	Next() float64

	// IntBetween returns a uniformly distributed int in [min, max], both
	// bounds inclusive.
	//
	// Precondition: max >= min. Implementations panic otherwise.
	IntBetween(min, max int) int

	// Intn returns a uniformly distributed int in [0, n).
	//
	// Precondition: n > 0. Implementations panic otherwise.
	Intn(n int) int
}

// Pick returns a uniformly chosen element of items.
//
// Precondition: items is not empty. Pick panics otherwise.
func Pick[T any](src Source, items []T) T {
	if len(items) == 0 {
		panic("rng: Pick called with empty list")
	}
	return items[src.Intn(len(items))]
}
