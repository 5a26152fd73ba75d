package repository

import (
	"context"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// UserStatsRepository maintains the cached per-user summary table.
type UserStatsRepository interface {
	// Recalculate recomputes the user's counters from source tables and
	// upserts the summary row, returning the fresh values.
	Recalculate(ctx context.Context, userID int64) (*domain.UserGeoStatistics, error)

	// Get reads the cached summary. Returns (nil, nil) when the user has
	// never been calculated.
	Get(ctx context.Context, userID int64) (*domain.UserGeoStatistics, error)
}
