package services

import (
	"context"
	"fmt"
	"tour-route-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

// CalculateRoutes computes independent routes concurrently, at most limit at
// a time (limit < 1 means unbounded). Results are in request order. The first
// failure cancels the remaining work and is returned.
func CalculateRoutes(
	ctx context.Context,
	rec *RouteReconstructor,
	reqs []RouteRequest,
	limit int,
) ([]*domain.Route, error) {
	routes := make([]*domain.Route, len(reqs))
	if len(reqs) == 0 {
		return routes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			route, err := rec.CalculateRoute(gctx, req)
			if err != nil {
				return fmt.Errorf("calculate routes: request %d: %w", i, err)
			}
			routes[i] = route
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return routes, nil
}
