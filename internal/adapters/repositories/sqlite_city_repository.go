package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"tour-route-service/internal/domain"
)

// SQLite-backed implementation of the CityRepository port.
type SqliteCityRepository struct{ DB *sql.DB }

func NewSqliteCityRepository(db *sql.DB) *SqliteCityRepository {
	return &SqliteCityRepository{DB: db}
}

// Return the least populous city matching name (and country when given).
// Fuzzy lookups also match the comma-separated translations column.
func (s *SqliteCityRepository) FindCity(
	ctx context.Context,
	name string,
	country string,
	fuzzy bool,
) (domain.City, bool, error) {
	if s.DB == nil {
		return domain.City{}, false, errors.New("sqlite city repository: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.City{}, false, errors.New("find city: name must not be empty")
	}

	where := "name = ?"
	args := []any{name}
	if fuzzy {
		where = `(name = ? OR translations LIKE ? ESCAPE '\')`
		args = append(args, "%"+escapeLike(name)+"%")
	}
	if country = strings.TrimSpace(country); country != "" {
		where += " AND country = ?"
		args = append(args, country)
	}

	// Only the fixed clause structure is interpolated; values stay parameterized.
	query := fmt.Sprintf(`
	SELECT
		name,
		country,
		latitude,
		longitude
	FROM cities
	WHERE %s
	ORDER BY population ASC, city_id ASC
	LIMIT 1;
	`, where)

	return scanCity(s.DB.QueryRowContext(ctx, query, args...))
}

func scanCity(row *sql.Row) (domain.City, bool, error) {
	var c domain.City
	var lat, lon float64
	err := row.Scan(&c.Name, &c.Country, &lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.City{}, false, nil
	}
	if err != nil {
		return domain.City{}, false, fmt.Errorf("find city: scan row: %w", err)
	}

	c.Location = domain.Location{X: lon, Y: lat}
	return c, true, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
