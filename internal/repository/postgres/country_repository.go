package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
)

// countryColumns is the catalog projection shared by both backends.
// geometry_json is populated by the import job regardless of backend, so
// every read path decodes geometry from it.
const countryColumns = `
	id, iso_alpha2, iso_alpha3, name, continent, capital,
	population, area_sq_km, geometry_json, centroid_lng, centroid_lat,
	created_at, updated_at
`

// countryBase holds the catalog queries that need no spatial SQL. Both
// the PostGIS and the fallback repositories embed it.
type countryBase struct {
	db     *sqlx.DB
	logger *zap.Logger
}

type countryRepository struct {
	countryBase
}

// NewCountryRepository creates the PostGIS-backed country repository.
// Containment and radius queries run as native spatial SQL.
func NewCountryRepository(db *DB) repository.CountryRepository {
	return &countryRepository{countryBase{db: db.DB, logger: db.logger}}
}

func scanCountry(scan func(dest ...interface{}) error) (*domain.Country, error) {
	var c domain.Country
	var geojson sql.NullString
	var centroidLng, centroidLat sql.NullFloat64

	err := scan(
		&c.ID, &c.IsoAlpha2, &c.IsoAlpha3, &c.Name, &c.Continent, &c.Capital,
		&c.Population, &c.AreaSqKm, &geojson, &centroidLng, &centroidLat,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if geojson.Valid && geojson.String != "" {
		g, err := domain.ParseGeometry([]byte(geojson.String))
		if err != nil {
			return nil, err
		}
		c.Geometry = g
	}
	if centroidLng.Valid && centroidLat.Valid {
		c.Centroid = &domain.Point{Lng: centroidLng.Float64, Lat: centroidLat.Float64}
	}

	return &c, nil
}

// GetAll returns the full catalog ordered by name.
func (r *countryBase) GetAll(ctx context.Context) ([]*domain.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get countries", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var countries []*domain.Country
	for rows.Next() {
		c, err := scanCountry(rows.Scan)
		if err != nil {
			r.logger.Error("Failed to scan country", zap.Error(err))
			continue
		}
		countries = append(countries, c)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating country rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return countries, nil
}

// FindByCode looks a country up by alpha-2 code, case-insensitively.
func (r *countryBase) FindByCode(ctx context.Context, isoAlpha2 string) (*domain.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE iso_alpha2 = UPPER($1)`

	c, err := scanCountry(r.db.QueryRowContext(ctx, query, isoAlpha2).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find country by code",
			zap.String("iso_alpha2", isoAlpha2),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return c, nil
}

// FindByID looks a country up by its surrogate id.
func (r *countryBase) FindByID(ctx context.Context, id int64) (*domain.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE id = $1`

	c, err := scanCountry(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find country by id",
			zap.Int64("id", id),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return c, nil
}

// Search matches countries by name or ISO code. Name-prefix hits rank
// first, then alpha-2-prefix hits, then everything else; ties break by
// descending population. Geometry is omitted from search results.
func (r *countryBase) Search(ctx context.Context, query string, limit int) ([]*domain.Country, error) {
	sqlQuery := `
		SELECT
			id, iso_alpha2, iso_alpha3, name, continent, capital,
			population, area_sq_km, created_at, updated_at
		FROM countries
		WHERE name ILIKE '%' || $1 || '%'
		   OR iso_alpha2 ILIKE $1 || '%'
		   OR iso_alpha3 ILIKE $1 || '%'
		ORDER BY
			CASE
				WHEN name ILIKE $1 || '%' THEN 1
				WHEN iso_alpha2 ILIKE $1 || '%' THEN 2
				ELSE 3
			END,
			population DESC NULLS LAST,
			name ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		r.logger.Error("Failed to search countries", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var countries []*domain.Country
	for rows.Next() {
		var c domain.Country
		err := rows.Scan(
			&c.ID, &c.IsoAlpha2, &c.IsoAlpha3, &c.Name, &c.Continent, &c.Capital,
			&c.Population, &c.AreaSqKm, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan country", zap.Error(err))
			continue
		}
		countries = append(countries, &c)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating country rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return countries, nil
}

// StatsByContinent aggregates the catalog per continent. Countries
// without a continent are excluded.
func (r *countryBase) StatsByContinent(ctx context.Context) ([]domain.ContinentStats, error) {
	query := `
		SELECT
			continent,
			COUNT(*) AS country_count,
			COALESCE(AVG(area_sq_km), 0) AS avg_area,
			COALESCE(SUM(population), 0) AS total_population
		FROM countries
		WHERE continent IS NOT NULL
		GROUP BY continent
		ORDER BY country_count DESC
	`

	var stats []domain.ContinentStats
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		r.logger.Error("Failed to aggregate continent stats", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stats, nil
}

// GetAllWithUserStatus left-joins the catalog with one user's statuses,
// so every country appears exactly once with "default" where no row exists.
func (r *countryBase) GetAllWithUserStatus(ctx context.Context, userID int64) ([]*domain.CountryWithStatus, error) {
	query := `
		SELECT
			c.id, c.iso_alpha2, c.iso_alpha3, c.name, c.continent, c.capital,
			c.population, c.area_sq_km, c.geometry_json, c.centroid_lng, c.centroid_lat,
			c.created_at, c.updated_at,
			COALESCE(s.status, 'default') AS status
		FROM countries c
		LEFT JOIN user_country_statuses s
			ON s.country_id = c.id AND s.user_id = $1
		ORDER BY c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to get countries with user status",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var result []*domain.CountryWithStatus
	for rows.Next() {
		var cs domain.CountryWithStatus
		var geojson sql.NullString
		var centroidLng, centroidLat sql.NullFloat64

		err := rows.Scan(
			&cs.ID, &cs.IsoAlpha2, &cs.IsoAlpha3, &cs.Name, &cs.Continent, &cs.Capital,
			&cs.Population, &cs.AreaSqKm, &geojson, &centroidLng, &centroidLat,
			&cs.CreatedAt, &cs.UpdatedAt,
			&cs.Status,
		)
		if err != nil {
			r.logger.Error("Failed to scan country with status", zap.Error(err))
			continue
		}

		if geojson.Valid && geojson.String != "" {
			g, err := domain.ParseGeometry([]byte(geojson.String))
			if err != nil {
				r.logger.Error("Failed to parse country geometry",
					zap.String("iso_alpha2", cs.IsoAlpha2),
					zap.Error(err),
				)
				continue
			}
			cs.Geometry = g
		}
		if centroidLng.Valid && centroidLat.Valid {
			cs.Centroid = &domain.Point{Lng: centroidLng.Float64, Lat: centroidLat.Float64}
		}

		result = append(result, &cs)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating country rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return result, nil
}

// FindByPoint returns the country containing the point using native
// containment, or nil when the point is on open sea.
func (r *countryRepository) FindByPoint(ctx context.Context, lng, lat float64) (*domain.Country, error) {
	query := `
		SELECT ` + countryColumns + `
		FROM countries
		WHERE geometry IS NOT NULL
		  AND ST_Contains(geometry, ST_SetSRID(ST_MakePoint($1, $2), 4326))
		ORDER BY id ASC
		LIMIT 1
	`

	c, err := scanCountry(r.db.QueryRowContext(ctx, query, lng, lat).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find country by point",
			zap.Float64("lng", lng),
			zap.Float64("lat", lat),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return c, nil
}

// FindInRadius returns countries whose boundary lies within radiusKm of
// the point, nearest first. The radius is converted to degrees and the
// degree distance scaled back to kilometers, matching the fallback math.
func (r *countryRepository) FindInRadius(ctx context.Context, lng, lat, radiusKm float64, limit int) ([]*domain.CountryDistance, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326) AS geom
		)
		SELECT
			id, iso_alpha2, iso_alpha3, name, continent, capital,
			population, area_sq_km, centroid_lng, centroid_lat,
			created_at, updated_at,
			ST_Distance(geometry, point.geom) * 111.32 AS distance_km
		FROM countries, point
		WHERE geometry IS NOT NULL
		  AND ST_DWithin(geometry, point.geom, $3)
		ORDER BY distance_km ASC
		LIMIT $4
	`

	rows, err := r.db.QueryContext(ctx, query, lng, lat, utils.KmToDegrees(radiusKm), limit)
	if err != nil {
		r.logger.Error("Failed to find countries in radius",
			zap.Float64("lng", lng),
			zap.Float64("lat", lat),
			zap.Float64("radius_km", radiusKm),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var result []*domain.CountryDistance
	for rows.Next() {
		var cd domain.CountryDistance
		var centroidLng, centroidLat sql.NullFloat64

		err := rows.Scan(
			&cd.ID, &cd.IsoAlpha2, &cd.IsoAlpha3, &cd.Name, &cd.Continent, &cd.Capital,
			&cd.Population, &cd.AreaSqKm, &centroidLng, &centroidLat,
			&cd.CreatedAt, &cd.UpdatedAt,
			&cd.DistanceKm,
		)
		if err != nil {
			r.logger.Error("Failed to scan country distance", zap.Error(err))
			continue
		}
		if centroidLng.Valid && centroidLat.Valid {
			cd.Centroid = &domain.Point{Lng: centroidLng.Float64, Lat: centroidLat.Float64}
		}
		result = append(result, &cd)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating country rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return result, nil
}

// Upsert writes a catalog entry keyed by alpha-2 code, keeping the
// native geometry column in sync with the serialized form.
func (r *countryRepository) Upsert(ctx context.Context, country *domain.Country) error {
	var geojson []byte
	if country.Geometry != nil {
		var err error
		geojson, err = json.Marshal(country.Geometry)
		if err != nil {
			r.logger.Error("Failed to marshal country geometry",
				zap.String("iso_alpha2", country.IsoAlpha2),
				zap.Error(err),
			)
			return errors.ErrInvalidRequest
		}
	}

	var centroidLng, centroidLat *float64
	if country.Centroid != nil {
		centroidLng = &country.Centroid.Lng
		centroidLat = &country.Centroid.Lat
	}

	query := `
		INSERT INTO countries (
			iso_alpha2, iso_alpha3, name, continent, capital,
			population, area_sq_km, geometry_json, geometry,
			centroid_lng, centroid_lat
		)
		VALUES (
			UPPER($1), UPPER($2), $3, $4, $5, $6, $7, $8,
			ST_Multi(ST_GeomFromGeoJSON($8)), $9, $10
		)
		ON CONFLICT (iso_alpha2) DO UPDATE SET
			iso_alpha3 = EXCLUDED.iso_alpha3,
			name = EXCLUDED.name,
			continent = EXCLUDED.continent,
			capital = EXCLUDED.capital,
			population = EXCLUDED.population,
			area_sq_km = EXCLUDED.area_sq_km,
			geometry_json = EXCLUDED.geometry_json,
			geometry = EXCLUDED.geometry,
			centroid_lng = EXCLUDED.centroid_lng,
			centroid_lat = EXCLUDED.centroid_lat,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		country.IsoAlpha2, country.IsoAlpha3, country.Name,
		country.Continent, country.Capital, country.Population, country.AreaSqKm,
		nullableString(geojson), centroidLng, centroidLat,
	)
	if err != nil {
		r.logger.Error("Failed to upsert country",
			zap.String("iso_alpha2", country.IsoAlpha2),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	return nil
}

// RefreshCentroids fills in missing centroids from the native geometry.
func (r *countryRepository) RefreshCentroids(ctx context.Context) error {
	query := `
		UPDATE countries
		SET centroid_lng = ST_X(ST_Centroid(geometry)),
		    centroid_lat = ST_Y(ST_Centroid(geometry)),
		    updated_at = NOW()
		WHERE geometry IS NOT NULL
		  AND (centroid_lng IS NULL OR centroid_lat IS NULL)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to refresh centroids", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
