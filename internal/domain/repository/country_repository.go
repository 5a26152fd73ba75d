package repository

import (
	"context"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// CountryRepository serves the boundary catalog and its spatial
// predicates. Two implementations exist: one backed by PostGIS and one
// working on serialized geometry with coordinate math. The right one is
// selected once at startup from the detected database capability.
type CountryRepository interface {
	// GetAll returns every country ordered by name, geometry included.
	GetAll(ctx context.Context) ([]*domain.Country, error)

	// FindByCode looks up a country by its alpha-2 code. Returns
	// (nil, nil) when absent; a missing country is not an error.
	FindByCode(ctx context.Context, isoAlpha2 string) (*domain.Country, error)

	// FindByID looks up a country by its surrogate id. Returns
	// (nil, nil) when absent.
	FindByID(ctx context.Context, id int64) (*domain.Country, error)

	// Search matches countries by name or ISO code substring.
	// Name-prefix matches rank above alpha-2-prefix matches, which rank
	// above everything else; ties break by descending population.
	Search(ctx context.Context, query string, limit int) ([]*domain.Country, error)

	// StatsByContinent aggregates the catalog per continent, skipping
	// countries without one, ordered by descending country count.
	StatsByContinent(ctx context.Context) ([]domain.ContinentStats, error)

	// GetAllWithUserStatus left-joins the catalog with one user's
	// statuses so every country appears exactly once; countries without
	// a row carry the "default" sentinel.
	GetAllWithUserStatus(ctx context.Context, userID int64) ([]*domain.CountryWithStatus, error)

	// FindByPoint returns the country whose boundary contains the point,
	// or (nil, nil) when the point is outside every boundary (open sea).
	// When boundaries overlap the first match in catalog order wins.
	FindByPoint(ctx context.Context, lng, lat float64) (*domain.Country, error)

	// FindInRadius returns countries within radiusKm of the point,
	// ordered by ascending distance, capped at limit.
	FindInRadius(ctx context.Context, lng, lat, radiusKm float64, limit int) ([]*domain.CountryDistance, error)

	// Upsert inserts or updates a catalog entry keyed by alpha-2 code.
	// Used by the import job only.
	Upsert(ctx context.Context, country *domain.Country) error

	// RefreshCentroids recomputes missing centroids after an import.
	RefreshCentroids(ctx context.Context) error
}
