package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/ports"
)

// RouteRequest is the input to CalculateRoute.
// Destinations and Names are parallel sequences. A zero TimeBudget selects
// the reconstructor's default.
type RouteRequest struct {
	Destinations []domain.Location
	Names        []string
	TimeBudget   time.Duration
}

// RouteReconstructor turns solver output into an annotated circular route.
//
// It holds no per-call state and is safe for concurrent use when its
// collaborators are.
type RouteReconstructor struct {
	solver        ports.Solver
	matrix        ports.DistanceMatrixBuilder
	defaultBudget time.Duration
	cache         ports.RouteCache
}

func NewRouteReconstructor(
	solver ports.Solver,
	matrix ports.DistanceMatrixBuilder,
	defaultBudget time.Duration,
) (*RouteReconstructor, error) {
	if solver == nil {
		return nil, errors.New("new route reconstructor: solver must be non-nil")
	}
	if matrix == nil {
		return nil, errors.New("new route reconstructor: distance matrix builder must be non-nil")
	}
	if defaultBudget <= 0 {
		return nil, fmt.Errorf("new route reconstructor: default budget must be positive, got %s", defaultBudget)
	}

	return &RouteReconstructor{
		solver:        solver,
		matrix:        matrix,
		defaultBudget: defaultBudget,
	}, nil
}

// WithCache returns a copy of r that serves and stores routes through cache.
func (r *RouteReconstructor) WithCache(cache ports.RouteCache) *RouteReconstructor {
	cp := *r
	cp.cache = cache
	return &cp
}

// DefaultBudget reports the time budget used when a request leaves it unset.
func (r *RouteReconstructor) DefaultBudget() time.Duration { return r.defaultBudget }

// CalculateRoute solves the tour for req and reconstructs the visiting order.
//
// Stop k of the result is the destination the solver placed at tour position
// k; its next hop is the distance to stop (k+1) mod N. A single stop gets a
// next hop of 0, its distance to itself.
func (r *RouteReconstructor) CalculateRoute(ctx context.Context, req RouteRequest) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "route.calculate")(&err)

	n := len(req.Destinations)
	if n != len(req.Names) {
		return nil, fmt.Errorf(
			"calculate route: %w: %d destinations, %d names",
			domain.ErrInputMismatch, n, len(req.Names),
		)
	}
	for i, d := range req.Destinations {
		if !d.IsFinite() {
			return nil, fmt.Errorf("calculate route: destination %d: %w", i, domain.ErrInvalidLocation)
		}
	}

	budget := req.TimeBudget
	if budget == 0 {
		budget = r.defaultBudget
	}
	if budget < 0 {
		return nil, fmt.Errorf("calculate route: time budget must not be negative, got %s", budget)
	}

	var key string
	if r.cache != nil {
		key = RouteKey(req.Destinations, req.Names, budget)
		cached, ok, cerr := r.cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("req_id=%s route cache read failed: %v", obs.RequestID(ctx), cerr)
		} else if ok {
			return cached, nil
		}
	}

	tour, err := r.solver.Solve(ctx, req.Destinations, budget)
	if err != nil {
		return nil, fmt.Errorf("calculate route: solve: %w", err)
	}

	route, err := r.Reconstruct(req.Destinations, req.Names, tour)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, key, route); err != nil {
			log.Printf("req_id=%s route cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return route, nil
}

// Reconstruct applies an already computed tour to destinations and names.
func (r *RouteReconstructor) Reconstruct(
	destinations []domain.Location,
	names []string,
	tour domain.Tour,
) (*domain.Route, error) {
	n := len(destinations)
	if n != len(names) {
		return nil, fmt.Errorf("reconstruct: %w: %d destinations, %d names", domain.ErrInputMismatch, n, len(names))
	}

	perm, err := assignments(tour, n)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}

	// Scatter: the destination at original index i lands in tour slot perm[i].
	ordered := make([]domain.Location, n)
	labels := make([]string, n)
	for i, pos := range perm {
		ordered[pos] = destinations[i]
		labels[pos] = names[i]
	}

	// Rebuilt over the tour order, so row k is stop k.
	matrix := r.matrix.DistanceMatrix(ordered)

	stops := make([]domain.RouteStop, n)
	for k := 0; k < n; k++ {
		stops[k] = domain.RouteStop{Location: ordered[k]}

		next := (k + 1) % n
		if d, ok := lookup(matrix, k, next); ok {
			stops[k].NextHopDistance = &d
		}
	}

	return &domain.Route{
		TotalDistance: tour.Distance,
		Stops:         stops,
		Labels:        labels,
	}, nil
}
