package domain

// Tour is the raw output of a TSP solver.
//
// Permutation[i] is the tour position assigned to the location originally
// at index i. Solvers that emit a trailing return-to-origin node set
// HasClosingMarker and append one extra element, which is never a real stop.
type Tour struct {
	Distance         float64
	Permutation      []int
	HasClosingMarker bool
}
