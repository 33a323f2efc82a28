package ports

import (
	"context"
	"tour-route-service/internal/domain"
)

// Port: a boundary for looking up stored cities by name.
type CityRepository interface {
	// Find the best matching city. country may be empty. When fuzzy is set the
	// name is also matched against alternate spellings. ok is false on a miss.
	FindCity(ctx context.Context, name string, country string, fuzzy bool) (city domain.City, ok bool, err error)
}
