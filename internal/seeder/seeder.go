package seeder

import (
	"context"

	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain/repository"
)

// Seeder imports a world-countries GeoJSON dataset into the catalog.
// Imports are idempotent: rows are keyed by alpha-2 code and re-running
// the import updates existing entries in place.
type Seeder struct {
	countryRepo repository.CountryRepository
	logger      *zap.Logger
}

// New creates a Seeder.
func New(countryRepo repository.CountryRepository, logger *zap.Logger) *Seeder {
	return &Seeder{
		countryRepo: countryRepo,
		logger:      logger,
	}
}

// Run parses the dataset and upserts every country, then fills in any
// centroids the parser could not compute.
func (s *Seeder) Run(ctx context.Context, path string) error {
	s.logger.Info("Importing country boundaries", zap.String("path", path))

	countries, skipped, err := ParseFile(path)
	if err != nil {
		return err
	}
	if skipped > 0 {
		s.logger.Warn("Some features were skipped", zap.Int("skipped", skipped))
	}

	imported := 0
	for _, country := range countries {
		if err := s.countryRepo.Upsert(ctx, country); err != nil {
			s.logger.Error("Failed to import country",
				zap.String("iso_alpha2", country.IsoAlpha2),
				zap.String("name", country.Name),
				zap.Error(err),
			)
			return err
		}
		imported++
	}

	if err := s.countryRepo.RefreshCentroids(ctx); err != nil {
		return err
	}

	s.logger.Info("Country boundaries imported",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
	return nil
}
