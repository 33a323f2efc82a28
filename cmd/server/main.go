package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"
	"tour-route-service/internal/adapters/cache"
	"tour-route-service/internal/adapters/distance"
	"tour-route-service/internal/adapters/geocode"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/adapters/solver"
	"tour-route-service/internal/api"
	"tour-route-service/internal/config"
	"tour-route-service/internal/platform/db"
	"tour-route-service/internal/ports"
	"tour-route-service/internal/services"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, postgres, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	cities, geocodeCache, err := initStorage(conn, postgres, cfg.SeedPath)
	if err != nil {
		log.Fatal(err)
	}

	routeCache, err := newRouteCache(cfg, conn, postgres)
	if err != nil {
		log.Fatal(err)
	}

	matrix := distance.NewEuclideanMatrix()
	tsp, err := solver.NewAnnealingSolver(matrix, uint64(time.Now().UnixNano()))
	if err != nil {
		log.Fatal(err)
	}

	rec, err := services.NewRouteReconstructor(tsp, matrix, cfg.TimeBudget)
	if err != nil {
		log.Fatal(err)
	}
	rec = rec.WithCache(routeCache)

	var geocoder ports.Geocoder
	if cfg.ORSAPIKey != "" {
		g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		geocoder = g
	} else {
		log.Println("ORS_API_KEY not set, unknown cities will be reported as unresolved")
	}

	trips, err := services.NewTripPlanner(cities, geocoder, rec)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(rec, trips, cfg.MaxDestinations)

	// Write timeout leaves room for batch requests at the maximum time budget.
	log.Printf("Server listening addr=:%s budget=%s", cfg.Port, cfg.TimeBudget)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openDB prefers Postgres when DATABASE_URL is set and falls back to a local SQLite file.
func openDB(cfg config.Config) (_ *sql.DB, postgres bool, _ error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		return conn, true, err
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	return conn, false, err
}

// initStorage creates the schema, seeds cities on startup for local runs and
// returns the dialect-specific repository and geocode cache.
func initStorage(conn *sql.DB, postgres bool, seedPath string) (ports.CityRepository, ports.GeocodeCache, error) {
	if postgres {
		if err := repositories.InitPostgresSchema(conn); err != nil {
			return nil, nil, fmt.Errorf("init storage: %w", err)
		}
		if err := repositories.SeedFromJSON(context.Background(), conn, seedPath, repositories.Postgres); err != nil {
			return nil, nil, fmt.Errorf("init storage: %w", err)
		}
		return repositories.NewPostgresCityRepository(conn), cache.NewSQLGeocodeCache(conn), nil
	}

	if err := repositories.InitSchema(conn); err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}
	if err := repositories.SeedFromJSON(context.Background(), conn, seedPath, repositories.Sqlite); err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}
	return repositories.NewSqliteCityRepository(conn), cache.NewSqliteGeocodeCache(conn), nil
}

// newRouteCache prefers Redis when REDIS_ADDR is set, otherwise the routes are
// cached in the same database as the cities.
func newRouteCache(cfg config.Config, conn *sql.DB, postgres bool) (ports.RouteCache, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("route cache: ping redis %q: %w", cfg.RedisAddr, err)
		}

		return cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
	}

	if postgres {
		return cache.NewSQLRouteCache(conn, cfg.RouteCacheTTL), nil
	}
	return cache.NewSqliteRouteCache(conn, cfg.RouteCacheTTL), nil
}
