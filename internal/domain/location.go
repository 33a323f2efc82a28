package domain

import "math"

// Immutable point in the plane. For cities X is longitude and Y is latitude.
type Location struct {
	X float64
	Y float64
}

// Return the location as [x, y] for external API compatibility.
func (l Location) ToList() []float64 { return []float64{l.X, l.Y} }

// Report whether both coordinates are finite numbers.
func (l Location) IsFinite() bool {
	return !math.IsNaN(l.X) && !math.IsInf(l.X, 0) && !math.IsNaN(l.Y) && !math.IsInf(l.Y, 0)
}

// A Location paired with its human-readable label.
type Destination struct {
	Name     string
	Location Location
}

// A stored city record used to resolve trip requests into destinations.
type City struct {
	Name     string
	Country  string
	Location Location
}

// Label returns "City, Country", or just the city name when the country is unknown.
func (c City) Label() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country
}
