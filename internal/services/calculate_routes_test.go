package services

import (
	"context"
	"errors"
	"testing"
	"tour-route-service/internal/adapters/distance"
	"tour-route-service/internal/adapters/solver"
	"tour-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRoutesKeepsOrder(t *testing.T) {
	s := solver.NewMockSolver(domain.Tour{Distance: 20, Permutation: []int{1, 0}})
	rec, err := NewRouteReconstructor(s, distance.NewEuclideanMatrix(), testBudget)
	require.NoError(t, err)

	reqs := make([]RouteRequest, 8)
	for i := range reqs {
		reqs[i] = RouteRequest{
			Destinations: []domain.Location{{X: float64(i), Y: 0}, {X: float64(i) + 10, Y: 0}},
			Names:        []string{"first", "second"},
		}
	}

	routes, err := CalculateRoutes(context.Background(), rec, reqs, 3)
	require.NoError(t, err)
	require.Len(t, routes, len(reqs))

	for i, r := range routes {
		assert.Equal(t, float64(i)+10, r.Stops[0].Location.X, "route %d", i)
		assert.Equal(t, []string{"second", "first"}, r.Labels)
	}
	assert.Len(t, s.Budgets(), len(reqs))
}

func TestCalculateRoutesFailsFast(t *testing.T) {
	s := solver.NewMockSolver(domain.Tour{Distance: 20, Permutation: []int{0, 1}})
	rec, err := NewRouteReconstructor(s, distance.NewEuclideanMatrix(), testBudget)
	require.NoError(t, err)

	reqs := []RouteRequest{
		{Destinations: twoPoints, Names: []string{"A", "B"}},
		{Destinations: twoPoints, Names: []string{"A"}},
	}

	_, err = CalculateRoutes(context.Background(), rec, reqs, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInputMismatch))
	assert.Contains(t, err.Error(), "request 1")
}

func TestCalculateRoutesEmpty(t *testing.T) {
	rec, err := NewRouteReconstructor(solver.NewMockSolver(domain.Tour{}), distance.NewEuclideanMatrix(), testBudget)
	require.NoError(t, err)

	routes, err := CalculateRoutes(context.Background(), rec, nil, 2)
	require.NoError(t, err)
	assert.Empty(t, routes)
}
