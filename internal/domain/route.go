package domain

// Represents a single stop in a circular route.
// NextHopDistance is the distance to the following stop; the last stop
// points back to the first. It is nil only when the distance matrix had
// no entry for the edge.
type RouteStop struct {
	Location        Location
	NextHopDistance *float64
}

// Represents a reconstructed tour.
// Stops and Labels are positionally aligned: Labels[k] names Stops[k].
// TotalDistance is reported exactly as the solver returned it.
type Route struct {
	TotalDistance float64
	Stops         []RouteStop
	Labels        []string
}

// Len returns the number of stops in the route.
func (r *Route) Len() int { return len(r.Stops) }
