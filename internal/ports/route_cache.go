package ports

import (
	"context"
	"tour-route-service/internal/domain"
)

// Cache of reconstructed routes keyed by a digest of the request.
type RouteCache interface {
	// Return the cached route; ok is false on a miss.
	Get(ctx context.Context, key string) (route *domain.Route, ok bool, err error)
	Put(ctx context.Context, key string, route *domain.Route) error
}
