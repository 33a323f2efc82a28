package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "DB_PATH", "REDIS_ADDR", "ROUTE_CACHE_TTL", "ROUTE_TIME_BUDGET", "MAX_DESTINATIONS", "ORS_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/app.db", cfg.DBPath)
	assert.Equal(t, DefaultTimeBudget, cfg.TimeBudget)
	assert.Equal(t, time.Hour, cfg.RouteCacheTTL)
	assert.Equal(t, 500, cfg.MaxDestinations)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ROUTE_TIME_BUDGET", "750ms")
	t.Setenv("ROUTE_CACHE_TTL", "5m")
	t.Setenv("MAX_DESTINATIONS", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.TimeBudget)
	assert.Equal(t, 5*time.Minute, cfg.RouteCacheTTL)
	assert.Equal(t, 20, cfg.MaxDestinations)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ROUTE_TIME_BUDGET": "soon",
		"MAX_DESTINATIONS":  "many",
		"ROUTE_CACHE_TTL":   "forever",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("non-positive budget", func(t *testing.T) {
		t.Setenv("ROUTE_TIME_BUDGET", "0s")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROUTECTL_TEST_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ROUTECTL_TEST_KEY") })

	LoadDotEnv(path)

	assert.Equal(t, "from-dotenv", Get("ROUTECTL_TEST_KEY", "fallback"))
}
