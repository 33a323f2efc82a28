package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Concurrent city lookups per trip.
const resolveConcurrency = 5

type CityQuery struct {
	City    string
	Country string
	// Home marks the city the trip starts from.
	Home bool
}

// Label is the display name used for cities that could not be resolved.
func (q CityQuery) Label() string {
	return domain.City{Name: q.City, Country: q.Country}.Label()
}

type TripRequest struct {
	Cities     []CityQuery
	TimeBudget time.Duration
}

// TripPlan is a route over the resolved cities. When a home city was
// requested and resolved, it is the first stop.
type TripPlan struct {
	Route      *domain.Route
	HomeFirst  bool
	Unresolved []string
}

// TripPlanner resolves city names to locations and routes between them.
type TripPlanner struct {
	cities   ports.CityRepository
	geocoder ports.Geocoder
	routes   *RouteReconstructor
}

// NewTripPlanner wires a planner. geocoder may be nil, in which case cities
// missing from the repository are reported as unresolved.
func NewTripPlanner(cities ports.CityRepository, geocoder ports.Geocoder, routes *RouteReconstructor) (*TripPlanner, error) {
	if cities == nil {
		return nil, errors.New("new trip planner: city repository must be non-nil")
	}
	if routes == nil {
		return nil, errors.New("new trip planner: route reconstructor must be non-nil")
	}

	return &TripPlanner{cities: cities, geocoder: geocoder, routes: routes}, nil
}

type resolvedCity struct {
	city domain.City
	ok   bool
}

func (p *TripPlanner) PlanTrip(ctx context.Context, req TripRequest) (_ *TripPlan, err error) {
	defer obs.Time(ctx, "trip.plan")(&err)

	for i, q := range req.Cities {
		i, q := i, q
		if strings.TrimSpace(q.City) == "" {
			return nil, fmt.Errorf("plan trip: city %d has an empty name", i)
		}
	}

	results := make([]resolvedCity, len(req.Cities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, q := range req.Cities {
		i, q := i, q
		g.Go(func() error {
			city, ok, err := p.resolve(gctx, q)
			if err != nil {
				return fmt.Errorf("plan trip: resolve %q: %w", q.Label(), err)
			}
			results[i] = resolvedCity{city: city, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		destinations []domain.Location
		names        []string
		unresolved   []string
		home         string
	)
	seen := make(map[string]struct{}, len(results))

	for i, res := range results {
		q := req.Cities[i]
		if !res.ok {
			unresolved = append(unresolved, q.Label())
			continue
		}

		label := res.city.Label()
		if q.Home && home == "" {
			home = label
		}
		// Several queries may resolve to the same city; it is visited once.
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}

		destinations = append(destinations, res.city.Location)
		names = append(names, label)
	}

	if len(destinations) == 0 {
		return &TripPlan{
			Route:      &domain.Route{Stops: []domain.RouteStop{}, Labels: []string{}},
			Unresolved: unresolved,
		}, nil
	}

	route, err := p.routes.CalculateRoute(ctx, RouteRequest{
		Destinations: destinations,
		Names:        names,
		TimeBudget:   req.TimeBudget,
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	homeFirst := false
	if home != "" {
		route, homeFirst = RotateToStart(route, home)
	}

	return &TripPlan{
		Route:      route,
		HomeFirst:  homeFirst,
		Unresolved: unresolved,
	}, nil
}

// resolve tries an exact repository match, then a fuzzy one, then the
// geocoder. The stored country wins over the requested one.
func (p *TripPlanner) resolve(ctx context.Context, q CityQuery) (domain.City, bool, error) {
	name := strings.TrimSpace(q.City)
	country := strings.TrimSpace(q.Country)

	for _, fuzzy := range []bool{false, true} {
		city, ok, err := p.cities.FindCity(ctx, name, country, fuzzy)
		if err != nil {
			return domain.City{}, false, fmt.Errorf("find city: %w", err)
		}
		if ok {
			return city, true, nil
		}
	}

	if p.geocoder == nil {
		return domain.City{}, false, nil
	}

	loc, err := p.geocoder.Geocode(ctx, domain.City{Name: name, Country: country}.Label())
	if errors.Is(err, domain.ErrLocationNotFound) {
		return domain.City{}, false, nil
	}
	if err != nil {
		return domain.City{}, false, fmt.Errorf("geocode: %w", err)
	}

	return domain.City{Name: name, Country: country, Location: loc}, true, nil
}
