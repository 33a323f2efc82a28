package services

import "tour-route-service/internal/domain"

// RotateToStart returns a copy of route rotated so the stop labelled start is
// first. Next-hop distances carry over unchanged because the route is a cycle.
// When no stop has the label the copy keeps the original order and ok is false.
func RotateToStart(route *domain.Route, start string) (_ *domain.Route, ok bool) {
	if route == nil {
		return nil, false
	}

	offset := -1
	for k, label := range route.Labels {
		if label == start {
			offset = k
			break
		}
	}

	n := len(route.Stops)
	stops := make([]domain.RouteStop, n)
	labels := make([]string, len(route.Labels))

	shift := offset
	if shift < 0 || n != len(route.Labels) {
		shift = 0
	}
	for k := 0; k < n; k++ {
		stops[k] = route.Stops[(k+shift)%n]
	}
	for k := range labels {
		labels[k] = route.Labels[(k+shift)%len(labels)]
	}

	return &domain.Route{
		TotalDistance: route.TotalDistance,
		Stops:         stops,
		Labels:        labels,
	}, offset >= 0
}
