package ports

import (
	"context"
	"time"
	"tour-route-service/internal/domain"
)

// Contract for a heuristic TSP solver.
type Solver interface {
	// Return a tour over locations, spending at most budget searching.
	Solve(ctx context.Context, locations []domain.Location, budget time.Duration) (domain.Tour, error)
}
