package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"tour-route-service/internal/domain"
)

// SQLite backed route cache. Entries expire ttl after they are written;
// expired rows are ignored on read and overwritten on the next Put.
type SqliteRouteCache struct {
	DB  *sql.DB
	TTL time.Duration
	// now is replaced in tests.
	now func() time.Time
}

func NewSqliteRouteCache(db *sql.DB, ttl time.Duration) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db, TTL: ttl, now: time.Now}
}

func (s *SqliteRouteCache) Get(ctx context.Context, key string) (*domain.Route, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	var payload []byte
	err := s.DB.QueryRowContext(ctx, `
	SELECT payload
    FROM route_cache
    WHERE cache_key = ?
        AND expires_at > ?;
	`, key, s.now().Unix()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	route, err := decodeRoute(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}
	return route, true, nil
}

func (s *SqliteRouteCache) Put(ctx context.Context, key string, route *domain.Route) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := encodeRoute(route)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (
        cache_key,
        payload,
        expires_at
    )
    VALUES (?, ?, ?);
	`, key, payload, s.now().Add(s.TTL).Unix()); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
