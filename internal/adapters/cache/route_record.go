package cache

import (
	"encoding/json"
	"fmt"
	"tour-route-service/internal/domain"
)

// routeRecord is the stored form of a domain.Route.
type routeRecord struct {
	TotalDistance float64      `json:"total_distance"`
	Stops         []stopRecord `json:"stops"`
	Labels        []string     `json:"labels"`
}

type stopRecord struct {
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	NextHop *float64 `json:"next_hop,omitempty"`
}

func encodeRoute(route *domain.Route) ([]byte, error) {
	if route == nil {
		return nil, fmt.Errorf("encode route: route is nil")
	}

	rec := routeRecord{
		TotalDistance: route.TotalDistance,
		Stops:         make([]stopRecord, 0, len(route.Stops)),
		Labels:        route.Labels,
	}
	for _, s := range route.Stops {
		rec.Stops = append(rec.Stops, stopRecord{X: s.Location.X, Y: s.Location.Y, NextHop: s.NextHopDistance})
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode route: %w", err)
	}
	return b, nil
}

func decodeRoute(b []byte) (*domain.Route, error) {
	var rec routeRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode route: %w", err)
	}
	if len(rec.Stops) != len(rec.Labels) {
		return nil, fmt.Errorf("decode route: %d stops but %d labels", len(rec.Stops), len(rec.Labels))
	}

	route := &domain.Route{
		TotalDistance: rec.TotalDistance,
		Stops:         make([]domain.RouteStop, 0, len(rec.Stops)),
		Labels:        rec.Labels,
	}
	if route.Labels == nil {
		route.Labels = []string{}
	}
	for _, s := range rec.Stops {
		route.Stops = append(route.Stops, domain.RouteStop{
			Location:        domain.Location{X: s.X, Y: s.Y},
			NextHopDistance: s.NextHop,
		})
	}
	return route, nil
}
