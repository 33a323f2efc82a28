package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS cities (
		city_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		country TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		population INTEGER NOT NULL DEFAULT 0,
		translations TEXT NOT NULL DEFAULT ''
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_cities_name_country
    ON cities(name, country);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        x REAL NOT NULL,
        y REAL NOT NULL
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS route_cache (
        cache_key TEXT PRIMARY KEY,
        payload BLOB NOT NULL,
        expires_at INTEGER NOT NULL
    );
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS cities (
		city_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		country TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		population BIGINT NOT NULL DEFAULT 0,
		translations TEXT NOT NULL DEFAULT ''
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_cities_name_country
    ON cities(name, country);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        x DOUBLE PRECISION NOT NULL,
        y DOUBLE PRECISION NOT NULL
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS route_cache (
        cache_key TEXT PRIMARY KEY,
        payload BYTEA NOT NULL,
        expires_at TIMESTAMPTZ NOT NULL
    );
	`,
}

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if err := initSchema(db, sqliteSchema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	if err := initSchema(db, postgresSchema); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

type CitySeed struct {
	CityID       int      `json:"city_id"`
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Population   int64    `json:"population"`
	Translations []string `json:"translations"`
}

// Dialect selects the placeholder style used when seeding.
type Dialect int

const (
	Sqlite Dialect = iota
	Postgres
)

// Populate the cities table from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string, dialect Dialect) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed cities: read %q: %w", jsonPath, err)
	}

	var data []CitySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed cities: parse json: %w", err)
	}

	rows := make([]CitySeed, 0, len(data))
	for i, item := range data {
		if item.CityID <= 0 {
			return fmt.Errorf("seed cities: invalid city_id at index %d: %d", i+1, item.CityID)
		}

		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return fmt.Errorf("seed cities: item at index %d: name cannot be empty", i+1)
		}
		item.Country = strings.TrimSpace(item.Country)

		if math.Abs(item.Latitude) > 90 || math.Abs(item.Longitude) > 180 {
			return fmt.Errorf("seed cities: item at index %d: coordinates (%v, %v) out of range", i+1, item.Latitude, item.Longitude)
		}
		rows = append(rows, item)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed cities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO cities (
		city_id, name, country, latitude, longitude, population, translations
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	if dialect == Postgres {
		query = `
		INSERT INTO cities (
			city_id, name, country, latitude, longitude, population, translations
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (city_id) DO UPDATE
		SET name = EXCLUDED.name,
			country = EXCLUDED.country,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			population = EXCLUDED.population,
			translations = EXCLUDED.translations;
		`
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed cities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range rows {
		translations := strings.Join(c.Translations, ",")
		if _, err := stmt.ExecContext(ctx, c.CityID, c.Name, c.Country, c.Latitude, c.Longitude, c.Population, translations); err != nil {
			return fmt.Errorf("seed cities: insert city_id=%d: %w", c.CityID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed cities: commit tx: %w", err)
	}

	return nil
}
