package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const citiesJSON = `[
	{"city_id": 1, "name": "Bangkok", "country": "Thailand", "latitude": 13.75, "longitude": 100.5, "population": 10000000, "translations": ["Krung Thep"]},
	{"city_id": 2, "name": "Chiang Mai", "country": "Thailand", "latitude": 18.79, "longitude": 98.98, "population": 130000, "translations": ["Chiangmai", "Chiang-Mai"]},
	{"city_id": 3, "name": "Springfield", "country": "USA", "latitude": 39.8, "longitude": -89.6, "population": 114000},
	{"city_id": 4, "name": "Springfield", "country": "USA", "latitude": 42.1, "longitude": -72.6, "population": 155000},
	{"city_id": 5, "name": "Springfield", "country": "Australia", "latitude": -27.6, "longitude": 152.9, "population": 20000},
	{"city_id": 6, "name": "Per_cent", "country": "Nowhere", "latitude": 0, "longitude": 0, "population": 1, "translations": ["100%"]}
]`

func seededDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))

	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, []byte(citiesJSON), 0o600))
	require.NoError(t, SeedFromJSON(context.Background(), conn, path, Sqlite))

	return conn
}

func TestSqliteCityRepositoryFindCity(t *testing.T) {
	repo := NewSqliteCityRepository(seededDB(t))
	ctx := context.Background()

	cases := []struct {
		name    string
		query   string
		country string
		fuzzy   bool
		wantOK  bool
		want    domain.City
	}{
		{
			name: "exact", query: "Bangkok", wantOK: true,
			want: domain.City{Name: "Bangkok", Country: "Thailand", Location: domain.Location{X: 100.5, Y: 13.75}},
		},
		{
			name: "least populous wins", query: "Springfield", wantOK: true,
			want: domain.City{Name: "Springfield", Country: "Australia", Location: domain.Location{X: 152.9, Y: -27.6}},
		},
		{
			name: "country filter", query: "Springfield", country: "USA", wantOK: true,
			want: domain.City{Name: "Springfield", Country: "USA", Location: domain.Location{X: -89.6, Y: 39.8}},
		},
		{name: "translation needs fuzzy", query: "Chiangmai"},
		{
			name: "translation with fuzzy", query: "Chiangmai", fuzzy: true, wantOK: true,
			want: domain.City{Name: "Chiang Mai", Country: "Thailand", Location: domain.Location{X: 98.98, Y: 18.79}},
		},
		{name: "wrong country", query: "Bangkok", country: "Vietnam", fuzzy: true},
		{name: "wildcards are literal", query: "%", fuzzy: true, wantOK: true,
			want: domain.City{Name: "Per_cent", Country: "Nowhere", Location: domain.Location{}}},
		{name: "underscore is literal", query: "Chiang_Mai", fuzzy: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := repo.FindCity(ctx, tc.query, tc.country, tc.fuzzy)
			require.NoError(t, err)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSqliteCityRepositoryRejectsEmptyName(t *testing.T) {
	repo := NewSqliteCityRepository(seededDB(t))

	_, _, err := repo.FindCity(context.Background(), " ", "", false)
	require.Error(t, err)
}

func TestSeedFromJSONValidates(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitSchema(conn))

	cases := map[string]string{
		"bad id":       `[{"city_id": 0, "name": "X", "latitude": 0, "longitude": 0}]`,
		"empty name":   `[{"city_id": 1, "name": " ", "latitude": 0, "longitude": 0}]`,
		"bad latitude": `[{"city_id": 1, "name": "X", "latitude": 91, "longitude": 0}]`,
		"not json":     `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cities.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			require.Error(t, SeedFromJSON(context.Background(), conn, path, Sqlite))
		})
	}

	require.Error(t, SeedFromJSON(context.Background(), conn, filepath.Join(t.TempDir(), "missing.json"), Sqlite))
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := seededDB(t)
	require.NoError(t, InitSchema(conn))
	require.Error(t, InitSchema(nil))
}
