package postgres

import (
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
)

// Repositories bundles the database-backed repositories with the spatial
// backend already chosen from the detected capability.
type Repositories struct {
	Country   repository.CountryRepository
	Status    repository.StatusRepository
	Location  repository.LocationRepository
	UserStats repository.UserStatsRepository
}

// NewRepositories wires repositories against the connected database,
// picking the PostGIS implementations when the extension is installed
// and the coordinate-math fallback otherwise.
func NewRepositories(db *DB) *Repositories {
	var country repository.CountryRepository
	if db.HasPostGIS() {
		country = NewCountryRepository(db)
	} else {
		db.logger.Warn("PostGIS not installed, using coordinate-math fallback for spatial queries")
		country = NewCountryFallbackRepository(db)
	}

	return &Repositories{
		Country:   country,
		Status:    NewStatusRepository(db),
		Location:  NewLocationRepository(db),
		UserStats: NewUserStatsRepository(db),
	}
}
