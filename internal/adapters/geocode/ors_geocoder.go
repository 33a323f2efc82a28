package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/ports"
)

const defaultBaseURL = "https://api.openrouteservice.org"

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder implements ports.Geocoder using OpenRouteService
// (/geocode/search), consulting a persistent cache first.
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	backoff time.Duration
	cache   ports.GeocodeCache
}

type Option func(*ORSGeocoder)

// WithBaseURL points the geocoder at another ORS-compatible server.
func WithBaseURL(u string) Option {
	return func(o *ORSGeocoder) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithBackoff sets the delay before the first retry.
func WithBackoff(d time.Duration) Option {
	return func(o *ORSGeocoder) { o.backoff = d }
}

// NewORSGeocoder builds a geocoder. cache may be nil.
func NewORSGeocoder(apiKey string, cache ports.GeocodeCache, opts ...Option) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		backoff: 200 * time.Millisecond,
		cache:   cache,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode returns the location of query as (X=lon, Y=lat).
// A query with no match yields domain.ErrLocationNotFound.
func (o *ORSGeocoder) Geocode(ctx context.Context, query string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(query)
	if norm == "" {
		return domain.Location{}, errors.New("geocode: query must be non-empty")
	}

	// Check persistent cache before issuing external API calls.
	if o.cache != nil {
		hits, err := o.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Location{}, fmt.Errorf("ORS get geocode cache: %w", err)
		}
		if loc, ok := hits[norm]; ok {
			return loc, nil
		}
	}

	loc, err := o.search(ctx, norm)
	if err != nil {
		return domain.Location{}, err
	}

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, map[string]domain.Location{norm: loc}); err != nil {
			log.Printf("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return loc, nil
}

func (o *ORSGeocoder) search(ctx context.Context, text string) (domain.Location, error) {
	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", text)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Location{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", text, domain.ErrLocationNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Location{}, fmt.Errorf("invalid coordinate format for %q", text)
	}

	return domain.Location{X: coords[0], Y: coords[1]}, nil
}
