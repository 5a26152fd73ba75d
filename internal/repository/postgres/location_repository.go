package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
)

// locationRepository persists geotagged locations. Locations are plain
// lng/lat points, so the planar distance math works identically on both
// database backends and no PostGIS variant is needed.
type locationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLocationRepository creates the location repository.
func NewLocationRepository(db *DB) repository.LocationRepository {
	return &locationRepository{db: db.DB, logger: db.logger}
}

func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}

	query := `
		INSERT INTO locations (
			id, trip_id, user_id, name, description, lng, lat,
			country_id, visit_date, rating, category
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		location.ID, location.TripID, location.UserID, location.Name,
		location.Description, location.Lng, location.Lat,
		location.CountryID, location.VisitDate, location.Rating, location.Category,
	).Scan(&location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create location",
			zap.Int64("user_id", location.UserID),
			zap.String("name", location.Name),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *locationRepository) Update(ctx context.Context, location *domain.Location) error {
	query := `
		UPDATE locations SET
			trip_id = $2, name = $3, description = $4, lng = $5, lat = $6,
			country_id = $7, visit_date = $8, rating = $9, category = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		location.ID, location.TripID, location.Name, location.Description,
		location.Lng, location.Lat, location.CountryID,
		location.VisitDate, location.Rating, location.Category,
	).Scan(&location.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.ErrLocationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update location",
			zap.String("id", location.ID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	var location domain.Location
	err := r.db.GetContext(ctx, &location,
		`SELECT * FROM locations WHERE id = $1`, id,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get location", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &location, nil
}

func (r *locationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Location, error) {
	query := `
		SELECT * FROM locations
		WHERE user_id = $1
		ORDER BY visit_date DESC NULLS LAST, created_at DESC
	`

	var locations []*domain.Location
	if err := r.db.SelectContext(ctx, &locations, query, userID); err != nil {
		r.logger.Error("Failed to list locations", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return locations, nil
}

func (r *locationRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM locations WHERE user_id = $1`, userID,
	)
	if err != nil {
		r.logger.Error("Failed to count locations", zap.Int64("user_id", userID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return count, nil
}

// Centroid averages the user's location coordinates. Nil when the user
// has no locations.
func (r *locationRepository) Centroid(ctx context.Context, userID int64) (*domain.Point, error) {
	var lng, lat sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(lng), AVG(lat) FROM locations WHERE user_id = $1`, userID,
	).Scan(&lng, &lat)
	if err != nil {
		r.logger.Error("Failed to compute location centroid",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	if !lng.Valid || !lat.Valid {
		return nil, nil
	}

	return &domain.Point{Lng: lng.Float64, Lat: lat.Float64}, nil
}

// TravelDistanceKm sums consecutive leg distances over the user's
// locations in visit order. Undated locations sort last, so they extend
// the path after every dated one.
func (r *locationRepository) TravelDistanceKm(ctx context.Context, userID int64) (float64, error) {
	query := `
		SELECT lng, lat FROM locations
		WHERE user_id = $1
		ORDER BY visit_date ASC NULLS LAST, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to load locations for distance",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return 0, errors.ErrDatabaseError
	}
	defer rows.Close()

	var total float64
	var prevLng, prevLat float64
	first := true
	for rows.Next() {
		var lng, lat float64
		if err := rows.Scan(&lng, &lat); err != nil {
			r.logger.Error("Failed to scan location point", zap.Error(err))
			continue
		}
		if !first {
			total += utils.DistanceKm(prevLng, prevLat, lng, lat)
		}
		prevLng, prevLat = lng, lat
		first = false
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating location rows", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return total, nil
}

// FindNearby returns the user's locations within radiusKm of the point,
// nearest first, skipping excludeID.
func (r *locationRepository) FindNearby(ctx context.Context, userID int64, lng, lat, radiusKm float64, excludeID uuid.UUID, limit int) ([]*domain.LocationDistance, error) {
	query := `
		SELECT *,
			SQRT(POWER(lng - $2, 2) + POWER(lat - $3, 2)) * 111.32 AS distance_km
		FROM locations
		WHERE user_id = $1
		  AND id <> $4
		  AND SQRT(POWER(lng - $2, 2) + POWER(lat - $3, 2)) * 111.32 <= $5
		ORDER BY distance_km ASC
		LIMIT $6
	`

	var result []*domain.LocationDistance
	err := r.db.SelectContext(ctx, &result, query, userID, lng, lat, excludeID, radiusKm, limit)
	if err != nil {
		r.logger.Error("Failed to find nearby locations",
			zap.Int64("user_id", userID),
			zap.Float64("radius_km", radiusKm),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return result, nil
}
