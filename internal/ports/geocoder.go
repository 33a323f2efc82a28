package ports

import (
	"context"
	"tour-route-service/internal/domain"
)

// Resolves free-text place names to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Location, error)
}

// Persistent cache of geocoding results keyed by normalized query.
type GeocodeCache interface {
	GetMany(ctx context.Context, queries []string) (map[string]domain.Location, error)
	PutMany(ctx context.Context, results map[string]domain.Location) error
}
