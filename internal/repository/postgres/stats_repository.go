package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
)

type userStatsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUserStatsRepository creates the per-user statistics summary repository.
func NewUserStatsRepository(db *DB) repository.UserStatsRepository {
	return &userStatsRepository{db: db.DB, logger: db.logger}
}

// Recalculate recomputes the user's counters straight from the source
// tables and upserts the summary row in one statement, so a lost race
// between two recalculations still converges on correct numbers.
func (r *userStatsRepository) Recalculate(ctx context.Context, userID int64) (*domain.UserGeoStatistics, error) {
	query := `
		INSERT INTO user_geo_statistics (
			user_id, countries_visited, total_locations, total_trips, last_calculated
		)
		VALUES (
			$1,
			(SELECT COUNT(*) FROM user_country_statuses WHERE user_id = $1 AND status = $2),
			(SELECT COUNT(*) FROM locations WHERE user_id = $1),
			(SELECT COUNT(DISTINCT trip_id) FROM locations WHERE user_id = $1 AND trip_id IS NOT NULL),
			NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			countries_visited = EXCLUDED.countries_visited,
			total_locations = EXCLUDED.total_locations,
			total_trips = EXCLUDED.total_trips,
			last_calculated = EXCLUDED.last_calculated
		RETURNING user_id, countries_visited, total_locations, total_trips, last_calculated
	`

	var stats domain.UserGeoStatistics
	err := r.db.QueryRowContext(ctx, query, userID, domain.StatusVisited).Scan(
		&stats.UserID, &stats.CountriesVisited, &stats.TotalLocations,
		&stats.TotalTrips, &stats.LastCalculated,
	)
	if err != nil {
		r.logger.Error("Failed to recalculate user statistics",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return &stats, nil
}

// Get reads the summary row. Nil when the user was never calculated.
func (r *userStatsRepository) Get(ctx context.Context, userID int64) (*domain.UserGeoStatistics, error) {
	var stats domain.UserGeoStatistics
	err := r.db.GetContext(ctx, &stats,
		`SELECT * FROM user_geo_statistics WHERE user_id = $1`, userID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user statistics",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return &stats, nil
}
