package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the CityRepository port (pgx driver).
type PostgresCityRepository struct{ DB *sql.DB }

func NewPostgresCityRepository(db *sql.DB) *PostgresCityRepository {
	return &PostgresCityRepository{DB: db}
}

// Same matching rules as SqliteCityRepository. An empty country matches any.
func (s *PostgresCityRepository) FindCity(
	ctx context.Context,
	name string,
	country string,
	fuzzy bool,
) (_ domain.City, _ bool, err error) {
	defer obs.Time(ctx, "cities.FindCity")(&err)

	if s.DB == nil {
		return domain.City{}, false, errors.New("postgres city repository: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.City{}, false, errors.New("find city: name must not be empty")
	}

	query := `
	SELECT name, country, latitude, longitude
	FROM cities
	WHERE (name = $1 OR ($2 AND translations LIKE '%' || $3 || '%'))
		AND ($4 = '' OR country = $4)
	ORDER BY population ASC, city_id ASC
	LIMIT 1;
	`

	return scanCity(s.DB.QueryRowContext(ctx, query, name, fuzzy, escapeLike(name), strings.TrimSpace(country)))
}
