package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"tour-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryGeocodeCache struct {
	mu sync.Mutex
	m  map[string]domain.Location
}

func (c *memoryGeocodeCache) GetMany(ctx context.Context, queries []string) (map[string]domain.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]domain.Location{}
	for _, q := range queries {
		if loc, ok := c.m[q]; ok {
			out[q] = loc
		}
	}
	return out, nil
}

func (c *memoryGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Location) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func newTestGeocoder(t *testing.T, h http.HandlerFunc, cache *memoryGeocodeCache) *ORSGeocoder {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var (
		g   *ORSGeocoder
		err error
	)
	if cache == nil {
		g, err = NewORSGeocoder("test-key", nil, WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	} else {
		g, err = NewORSGeocoder("test-key", cache, WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	}
	require.NoError(t, err)
	return g
}

func TestORSGeocoderCachesResults(t *testing.T) {
	var calls atomic.Int32
	cache := &memoryGeocodeCache{m: map[string]domain.Location{}}

	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Hanoi, Vietnam", r.URL.Query().Get("text"))
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[105.85,21.03]}}]}`))
	}, cache)

	ctx := context.Background()
	loc, err := g.Geocode(ctx, "  Hanoi,   Vietnam ")
	require.NoError(t, err)
	assert.Equal(t, domain.Location{X: 105.85, Y: 21.03}, loc)

	loc, err = g.Geocode(ctx, "Hanoi, Vietnam")
	require.NoError(t, err)
	assert.Equal(t, domain.Location{X: 105.85, Y: 21.03}, loc)

	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, cache.m, "Hanoi, Vietnam")
}

func TestORSGeocoderNotFound(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}, nil)

	_, err := g.Geocode(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLocationNotFound))
}

func TestORSGeocoderRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[1,2]}}]}`))
	}, nil)

	loc, err := g.Geocode(context.Background(), "Somewhere")
	require.NoError(t, err)
	assert.Equal(t, domain.Location{X: 1, Y: 2}, loc)
	assert.Equal(t, int32(3), calls.Load())
}

func TestORSGeocoderDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	}, nil)

	_, err := g.Geocode(context.Background(), "Somewhere")
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestORSGeocoderGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}, nil)

	_, err := g.Geocode(context.Background(), "Somewhere")
	require.Error(t, err)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestORSGeocoderRejectsBadInput(t *testing.T) {
	_, err := NewORSGeocoder("", nil)
	require.Error(t, err)

	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[1]}}]}`))
	}, nil)

	_, err = g.Geocode(context.Background(), "   ")
	require.Error(t, err)

	_, err = g.Geocode(context.Background(), "Somewhere")
	require.Error(t, err)
}
