package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// LocationRepository persists geotagged locations and answers the
// aggregate queries the statistics service needs.
type LocationRepository interface {
	// Create inserts a location. The caller is expected to have run
	// country resolution already; CountryID may legitimately be nil.
	Create(ctx context.Context, location *domain.Location) error

	// Update rewrites a location's mutable fields.
	Update(ctx context.Context, location *domain.Location) error

	// GetByID fetches one location. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)

	// ListByUser returns the user's locations, newest visit first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Location, error)

	// CountByUser counts the user's locations.
	CountByUser(ctx context.Context, userID int64) (int, error)

	// Centroid returns the average point of the user's locations, or
	// (nil, nil) when the user has none.
	Centroid(ctx context.Context, userID int64) (*domain.Point, error)

	// TravelDistanceKm sums pairwise consecutive distances over the
	// user's locations ordered by visit date (nulls last) then creation
	// time. A path length in chronological order, never reordered.
	TravelDistanceKm(ctx context.Context, userID int64) (float64, error)

	// FindNearby returns the user's locations within radiusKm of the
	// point, excluding excludeID, ascending by distance, capped at limit.
	FindNearby(ctx context.Context, userID int64, lng, lat, radiusKm float64, excludeID uuid.UUID, limit int) ([]*domain.LocationDistance, error)
}
