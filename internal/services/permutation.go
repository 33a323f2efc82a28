package services

import (
	"fmt"
	"tour-route-service/internal/domain"
)

// assignments returns the first n entries of the solver permutation after
// checking they form a bijection over 0..n-1.
//
// A permutation may carry one trailing closing marker. It is dropped when the
// solver flags it or when its value is n or more; an unflagged in-range
// trailing value is ambiguous and rejected.
func assignments(tour domain.Tour, n int) ([]int, error) {
	perm := tour.Permutation

	switch len(perm) {
	case n:
	case n + 1:
		if !tour.HasClosingMarker && perm[n] < n {
			return nil, fmt.Errorf(
				"%w: %d entries for %d destinations and trailing value %d is not a closing marker",
				domain.ErrSolverContractViolation, len(perm), n, perm[n],
			)
		}
		perm = perm[:n]
	default:
		return nil, fmt.Errorf(
			"%w: %d entries for %d destinations",
			domain.ErrSolverContractViolation, len(perm), n,
		)
	}

	used := make([]bool, n)
	for i, pos := range perm {
		if pos < 0 || pos >= n {
			return nil, fmt.Errorf(
				"%w: destination %d assigned to position %d outside [0, %d)",
				domain.ErrSolverContractViolation, i, pos, n,
			)
		}
		if used[pos] {
			return nil, fmt.Errorf(
				"%w: position %d assigned twice (again by destination %d)",
				domain.ErrSolverContractViolation, pos, i,
			)
		}
		used[pos] = true
	}

	return perm, nil
}

// lookup reads m[row][col], reporting false when the cell does not exist.
func lookup(m [][]float64, row, col int) (float64, bool) {
	if row < 0 || row >= len(m) {
		return 0, false
	}
	if col < 0 || col >= len(m[row]) {
		return 0, false
	}
	return m[row][col], true
}
