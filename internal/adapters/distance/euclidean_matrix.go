package distance

import (
	"math"
	"tour-route-service/internal/domain"
)

// EuclideanMatrix builds straight-line distance matrices.
// It is stateless and safe for concurrent use.
type EuclideanMatrix struct{}

func NewEuclideanMatrix() EuclideanMatrix { return EuclideanMatrix{} }

// DistanceMatrix returns the symmetric N×N matrix of pairwise distances.
// The diagonal is zero and coincident locations are zero apart.
func (EuclideanMatrix) DistanceMatrix(locations []domain.Location) [][]float64 {
	n := len(locations)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Euclidean(locations[i], locations[j])
			out[i][j] = d
			out[j][i] = d
		}
	}

	return out
}

// Euclidean returns the straight-line distance between a and b.
func Euclidean(a, b domain.Location) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
