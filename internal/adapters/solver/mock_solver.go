package solver

import (
	"context"
	"sync"
	"time"
	"tour-route-service/internal/domain"
)

// MockSolver returns a fixed tour regardless of the input locations.
// It records the budget of every call so tests can assert on defaults.
type MockSolver struct {
	tour domain.Tour
	err  error

	mu      sync.Mutex
	budgets []time.Duration
}

func NewMockSolver(tour domain.Tour) *MockSolver {
	return &MockSolver{tour: tour}
}

// NewFailingMockSolver returns a solver whose every call fails with err.
func NewFailingMockSolver(err error) *MockSolver {
	return &MockSolver{err: err}
}

func (s *MockSolver) Solve(ctx context.Context, locations []domain.Location, budget time.Duration) (domain.Tour, error) {
	s.mu.Lock()
	s.budgets = append(s.budgets, budget)
	s.mu.Unlock()

	if s.err != nil {
		return domain.Tour{}, s.err
	}

	perm := make([]int, len(s.tour.Permutation))
	copy(perm, s.tour.Permutation)

	return domain.Tour{
		Distance:         s.tour.Distance,
		Permutation:      perm,
		HasClosingMarker: s.tour.HasClosingMarker,
	}, nil
}

// Budgets returns the time budgets passed to Solve, in call order.
func (s *MockSolver) Budgets() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]time.Duration, len(s.budgets))
	copy(out, s.budgets)
	return out
}
