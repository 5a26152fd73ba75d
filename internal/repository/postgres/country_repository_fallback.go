package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
)

// countryFallbackRepository serves spatial queries without PostGIS:
// containment runs as ray casting over the serialized boundaries and
// radius search as planar centroid distance. Results match the native
// backend's units because both scale degrees by the same factor, but
// the reference point differs: the native path measures to the nearest
// boundary edge while this one measures to the centroid, so a country
// whose border lies just inside the radius can be included by one
// backend and excluded by the other.
type countryFallbackRepository struct {
	countryBase
}

// NewCountryFallbackRepository creates the coordinate-math country
// repository used when the database has no PostGIS extension.
func NewCountryFallbackRepository(db *DB) repository.CountryRepository {
	return &countryFallbackRepository{countryBase{db: db.DB, logger: db.logger}}
}

// FindByPoint walks the catalog in id order and returns the first
// country whose boundary contains the point.
func (r *countryFallbackRepository) FindByPoint(ctx context.Context, lng, lat float64) (*domain.Country, error) {
	query := `
		SELECT ` + countryColumns + `
		FROM countries
		WHERE geometry_json IS NOT NULL
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load boundaries for containment",
			zap.Float64("lng", lng),
			zap.Float64("lat", lat),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCountry(rows.Scan)
		if err != nil {
			r.logger.Error("Failed to scan country", zap.Error(err))
			continue
		}
		if c.Geometry == nil {
			continue
		}

		multi, err := c.Geometry.AsMultiPolygon()
		if err != nil {
			r.logger.Error("Unsupported boundary geometry",
				zap.String("iso_alpha2", c.IsoAlpha2),
				zap.String("type", c.Geometry.Type),
				zap.Error(err),
			)
			continue
		}

		if utils.PointInMultiPolygon(lng, lat, multi) {
			return c, nil
		}
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating country rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return nil, nil
}

// FindInRadius measures planar distance from the point to each country
// centroid, keeping those within radiusKm, nearest first. Centroid
// distance overestimates for large countries whose boundary comes much
// closer than their center.
func (r *countryFallbackRepository) FindInRadius(ctx context.Context, lng, lat, radiusKm float64, limit int) ([]*domain.CountryDistance, error) {
	query := `
		SELECT
			id, iso_alpha2, iso_alpha3, name, continent, capital,
			population, area_sq_km, centroid_lng, centroid_lat,
			created_at, updated_at
		FROM countries
		WHERE centroid_lng IS NOT NULL AND centroid_lat IS NOT NULL
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load centroids for radius search",
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
		)
		if err != nil {
			r.logger.Error("Failed to scan country", zap.Error(err))
			continue
		}

		cd.Centroid = &domain.Point{Lng: centroidLng.Float64, Lat: centroidLat.Float64}
		cd.DistanceKm = utils.DistanceKm(lng, lat, cd.Centroid.Lng, cd.Centroid.Lat)
		if cd.DistanceKm <= radiusKm {
			result = append(result, &cd)
		}
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating country rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// Upsert writes a catalog entry without touching the native geometry
// column, which does not exist on this backend.
func (r *countryFallbackRepository) Upsert(ctx context.Context, country *domain.Country) error {
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
			population, area_sq_km, geometry_json, centroid_lng, centroid_lat
		)
		VALUES (UPPER($1), UPPER($2), $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (iso_alpha2) DO UPDATE SET
			iso_alpha3 = EXCLUDED.iso_alpha3,
			name = EXCLUDED.name,
			continent = EXCLUDED.continent,
			capital = EXCLUDED.capital,
			population = EXCLUDED.population,
			area_sq_km = EXCLUDED.area_sq_km,
			geometry_json = EXCLUDED.geometry_json,
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

// RefreshCentroids computes missing centroids in Go as the average of
// every boundary vertex.
func (r *countryFallbackRepository) RefreshCentroids(ctx context.Context) error {
	query := `
		SELECT id, iso_alpha2, geometry_json
		FROM countries
		WHERE geometry_json IS NOT NULL
		  AND (centroid_lng IS NULL OR centroid_lat IS NULL)
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load geometries for centroid refresh", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer rows.Close()

	type centroidUpdate struct {
		id       int64
		lng, lat float64
	}
	var updates []centroidUpdate

	for rows.Next() {
		var id int64
		var isoAlpha2, geojson string
		if err := rows.Scan(&id, &isoAlpha2, &geojson); err != nil {
			r.logger.Error("Failed to scan country geometry", zap.Error(err))
			continue
		}

		g, err := domain.ParseGeometry([]byte(geojson))
		if err != nil {
			r.logger.Error("Failed to parse country geometry",
				zap.String("iso_alpha2", isoAlpha2),
				zap.Error(err),
			)
			continue
		}
		multi, err := g.AsMultiPolygon()
		if err != nil {
			continue
		}

		var points [][2]float64
		for _, polygon := range multi {
			for _, ring := range polygon {
				for _, coord := range ring {
					if len(coord) >= 2 {
						points = append(points, [2]float64{coord[0], coord[1]})
					}
				}
			}
		}
		if len(points) == 0 {
			continue
		}

		lng, lat := utils.Centroid(points)
		updates = append(updates, centroidUpdate{id: id, lng: lng, lat: lat})
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating country rows", zap.Error(err))
		return errors.ErrDatabaseError
	}

	for _, u := range updates {
		_, err := r.db.ExecContext(ctx,
			`UPDATE countries SET centroid_lng = $1, centroid_lat = $2, updated_at = NOW() WHERE id = $3`,
			u.lng, u.lat, u.id,
		)
		if err != nil {
			r.logger.Error("Failed to store centroid", zap.Int64("id", u.id), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	return nil
}
