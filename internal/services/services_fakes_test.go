package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"tour-route-service/internal/domain"
)

// memoryRouteCache is an in-process RouteCache.
type memoryRouteCache struct {
	mu     sync.Mutex
	routes map[string]*domain.Route
	getErr error
}

func newMemoryRouteCache() *memoryRouteCache {
	return &memoryRouteCache{routes: map[string]*domain.Route{}}
}

func (c *memoryRouteCache) Get(ctx context.Context, key string) (*domain.Route, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.routes[key]
	return r, ok, nil
}

func (c *memoryRouteCache) Put(ctx context.Context, key string, route *domain.Route) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[key] = route
	return nil
}

// memoryCityRepository matches names exactly, or by substring of the
// alternate spellings when fuzzy is set.
type memoryCityRepository struct {
	cities       []domain.City
	translations map[string]string
	err          error
}

func (r *memoryCityRepository) FindCity(ctx context.Context, name, country string, fuzzy bool) (domain.City, bool, error) {
	if r.err != nil {
		return domain.City{}, false, r.err
	}
	for _, c := range r.cities {
		if country != "" && c.Country != country {
			continue
		}
		if c.Name == name {
			return c, true, nil
		}
		if fuzzy && strings.Contains(r.translations[c.Name], name) {
			return c, true, nil
		}
	}
	return domain.City{}, false, nil
}

type stubGeocoder struct {
	known map[string]domain.Location
	err   error
}

func (g *stubGeocoder) Geocode(ctx context.Context, query string) (domain.Location, error) {
	if g.err != nil {
		return domain.Location{}, g.err
	}
	loc, ok := g.known[query]
	if !ok {
		return domain.Location{}, domain.ErrLocationNotFound
	}
	return loc, nil
}

var errStub = errors.New("stub failure")
