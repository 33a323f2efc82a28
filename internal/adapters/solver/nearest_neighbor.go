package solver

import "math"

// nearestNeighborOrder builds a greedy visiting order starting at index 0.
//
// Each step moves to the closest unvisited location. Ties go to the lowest
// index so the seed tour is deterministic.
func nearestNeighborOrder(dist [][]float64) []int {
	n := len(dist)
	if n == 0 {
		return []int{}
	}

	order := make([]int, 0, n)
	visited := make([]bool, n)

	current := 0
	order = append(order, current)
	visited[current] = true

	for len(order) < n {
		best := -1
		minDist := math.Inf(1)

		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			// Strict comparison keeps the lowest index on equal distances.
			if d := dist[current][j]; best == -1 || d < minDist {
				minDist = d
				best = j
			}
		}

		visited[best] = true
		order = append(order, best)
		current = best
	}

	return order
}

// cycleLength sums the edges of order, including the closing edge back to order[0].
func cycleLength(dist [][]float64, order []int) float64 {
	n := len(order)
	if n < 2 {
		return 0
	}

	total := 0.0
	for k := 0; k < n; k++ {
		total += dist[order[k]][order[(k+1)%n]]
	}
	return total
}
