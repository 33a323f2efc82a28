package ports

import "tour-route-service/internal/domain"

// Builds the full pairwise distance matrix for an ordered sequence of locations.
// Implementations must be pure: the same input always yields the same matrix.
type DistanceMatrixBuilder interface {
	DistanceMatrix(locations []domain.Location) [][]float64
}
