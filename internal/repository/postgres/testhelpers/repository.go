package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger, postgis bool) *postgres.DB {
	return postgres.NewDBForTest(db, logger, postgis)
}

// NewCountryRepositoryForTest creates a country repository matching the
// test database's spatial capability
func NewCountryRepositoryForTest(tdb *TestDB) repository.CountryRepository {
	pgDB := NewDBForTest(tdb.DB, tdb.Logger, tdb.PostGIS)
	if tdb.PostGIS {
		return postgres.NewCountryRepository(pgDB)
	}
	return postgres.NewCountryFallbackRepository(pgDB)
}

// NewStatusRepositoryForTest creates a status repository with test database and logger
func NewStatusRepositoryForTest(tdb *TestDB) repository.StatusRepository {
	pgDB := NewDBForTest(tdb.DB, tdb.Logger, tdb.PostGIS)
	return postgres.NewStatusRepository(pgDB)
}

// NewLocationRepositoryForTest creates a location repository with test database and logger
func NewLocationRepositoryForTest(tdb *TestDB) repository.LocationRepository {
	pgDB := NewDBForTest(tdb.DB, tdb.Logger, tdb.PostGIS)
	return postgres.NewLocationRepository(pgDB)
}

// NewUserStatsRepositoryForTest creates a user stats repository with test database and logger
func NewUserStatsRepositoryForTest(tdb *TestDB) repository.UserStatsRepository {
	pgDB := NewDBForTest(tdb.DB, tdb.Logger, tdb.PostGIS)
	return postgres.NewUserStatsRepository(pgDB)
}
