package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/ports"

	"golang.org/x/exp/rand"
)

const (
	defaultCoolingRate = 0.9995
	minTemperatureFrac = 1e-6
	// Clock and context are checked once per this many moves.
	checkEvery = 256
)

// AnnealingSolver implements ports.Solver with simulated annealing over
// 2-opt segment reversals, seeded by a nearest-neighbour tour.
//
// The returned permutation follows the closing-node convention: N entries
// mapping original index to tour position, then a trailing marker equal to N.
type AnnealingSolver struct {
	matrix ports.DistanceMatrixBuilder
	seed   uint64

	// CoolingRate multiplies the temperature after every move (0 < r < 1).
	CoolingRate float64
	// MaxIterations stops the search early when positive.
	MaxIterations int
}

func NewAnnealingSolver(matrix ports.DistanceMatrixBuilder, seed uint64) (*AnnealingSolver, error) {
	if matrix == nil {
		return nil, errors.New("annealing solver: distance matrix builder is nil")
	}

	return &AnnealingSolver{
		matrix:      matrix,
		seed:        seed,
		CoolingRate: defaultCoolingRate,
	}, nil
}

func (s *AnnealingSolver) Solve(
	ctx context.Context,
	locations []domain.Location,
	budget time.Duration,
) (_ domain.Tour, err error) {
	defer obs.Time(ctx, "solver.anneal")(&err)

	if budget <= 0 {
		return domain.Tour{}, fmt.Errorf("anneal: time budget must be positive, got %s", budget)
	}
	if s.CoolingRate <= 0 || s.CoolingRate >= 1 {
		return domain.Tour{}, fmt.Errorf("anneal: cooling rate must be in (0, 1), got %v", s.CoolingRate)
	}

	n := len(locations)
	dist := s.matrix.DistanceMatrix(locations)
	if len(dist) != n {
		return domain.Tour{}, fmt.Errorf("anneal: distance matrix has %d rows for %d locations", len(dist), n)
	}

	order := nearestNeighborOrder(dist)

	// Every cycle over three or fewer stops has the same length.
	if n >= 4 {
		order, err = s.anneal(ctx, dist, order, time.Now().Add(budget))
		if err != nil {
			return domain.Tour{}, err
		}
	}

	perm := make([]int, n+1)
	for pos, idx := range order {
		perm[idx] = pos
	}
	perm[n] = n

	return domain.Tour{
		Distance:         cycleLength(dist, order),
		Permutation:      perm,
		HasClosingMarker: true,
	}, nil
}

func (s *AnnealingSolver) anneal(
	ctx context.Context,
	dist [][]float64,
	order []int,
	deadline time.Time,
) ([]int, error) {
	n := len(order)
	rng := rand.New(rand.NewSource(s.seed))

	current := append([]int(nil), order...)
	currentCost := cycleLength(dist, current)
	best := append([]int(nil), current...)
	bestCost := currentCost

	initialTemp := currentCost / float64(n)
	if initialTemp <= 0 {
		// All locations coincide.
		return best, nil
	}
	minTemp := initialTemp * minTemperatureFrac
	temp := initialTemp

	for iter := 0; s.MaxIterations <= 0 || iter < s.MaxIterations; iter++ {
		if iter%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("anneal: %w", err)
			}
			if !time.Now().Before(deadline) {
				break
			}
		}

		// Position 0 stays fixed; reverse current[i..j].
		i := 1 + rng.Intn(n-1)
		j := 1 + rng.Intn(n-1)
		if i == j {
			continue
		}
		if i > j {
			i, j = j, i
		}

		a, b := current[i-1], current[i]
		c, d := current[j], current[(j+1)%n]
		delta := dist[a][c] + dist[b][d] - dist[a][b] - dist[c][d]

		if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
			reverse(current[i : j+1])
			currentCost += delta

			if currentCost < bestCost {
				copy(best, current)
				bestCost = currentCost
			}
		}

		temp *= s.CoolingRate
		if temp < minTemp {
			// Schedule bottomed out: reheat from the best tour.
			temp = initialTemp
			copy(current, best)
			currentCost = bestCost
		}
	}

	return best, nil
}

func reverse(s []int) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}
