package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/repository/postgres/testhelpers"
)

type UserStatsRepositoryTestSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDB
	repo         repository.UserStatsRepository
	statusRepo   repository.StatusRepository
	locationRepo repository.LocationRepository
	countryRepo  repository.CountryRepository
	ctx          context.Context
	countryIDs   map[string]int64
}

func (s *UserStatsRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := s.testDB.Cleanup(context.Background())
	s.NoError(err, "Failed to cleanup test database")

	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	s.repo = testhelpers.NewUserStatsRepositoryForTest(s.testDB)
	s.statusRepo = testhelpers.NewStatusRepositoryForTest(s.testDB)
	s.locationRepo = testhelpers.NewLocationRepositoryForTest(s.testDB)
	s.countryRepo = testhelpers.NewCountryRepositoryForTest(s.testDB)

	s.countryIDs = make(map[string]int64)
	for _, c := range testCountries() {
		s.Require().NoError(s.countryRepo.Upsert(context.Background(), c))
		stored, err := s.countryRepo.FindByCode(context.Background(), c.IsoAlpha2)
		s.Require().NoError(err)
		s.Require().NotNil(stored)
		s.countryIDs[c.IsoAlpha2] = stored.ID
	}
}

func (s *UserStatsRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(context.Background())
		s.testDB.Close()
	}
}

func (s *UserStatsRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	for _, table := range []string{"user_geo_statistics", "user_country_statuses", "locations"} {
		_, err := s.testDB.DB.ExecContext(s.ctx, "TRUNCATE TABLE "+table+" CASCADE")
		s.Require().NoError(err)
	}
}

func (s *UserStatsRepositoryTestSuite) TestGet_NeverCalculated() {
	stats, err := s.repo.Get(s.ctx, 99999)

	s.NoError(err)
	s.Nil(stats)
}

func (s *UserStatsRepositoryTestSuite) TestRecalculate_EmptyUser() {
	stats, err := s.repo.Recalculate(s.ctx, 100)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(int64(100), stats.UserID)
	s.Equal(0, stats.CountriesVisited)
	s.Equal(0, stats.TotalLocations)
	s.Equal(0, stats.TotalTrips)
	s.WithinDuration(time.Now(), stats.LastCalculated, time.Minute)
}

func (s *UserStatsRepositoryTestSuite) TestRecalculate_CountsFromSourceTables() {
	// 2 visited countries, 1 wishlist (not counted)
	s.Require().NoError(s.statusRepo.Replace(s.ctx, &domain.UserCountryStatus{
		UserID: 100, CountryID: s.countryIDs["ES"], Status: domain.StatusVisited,
	}))
	s.Require().NoError(s.statusRepo.Replace(s.ctx, &domain.UserCountryStatus{
		UserID: 100, CountryID: s.countryIDs["PT"], Status: domain.StatusVisited,
	}))
	s.Require().NoError(s.statusRepo.Replace(s.ctx, &domain.UserCountryStatus{
		UserID: 100, CountryID: s.countryIDs["FR"], Status: domain.StatusWishlist,
	}))

	// 3 locations across 2 trips plus one without a trip
	tripA := uuid.New()
	tripB := uuid.New()
	locations := []*domain.Location{
		{UserID: 100, Name: "Madrid", Lng: -3.7, Lat: 40.4, TripID: &tripA, Category: domain.CategoryCity},
		{UserID: 100, Name: "Lisbon", Lng: -9.14, Lat: 38.72, TripID: &tripA, Category: domain.CategoryCity},
		{UserID: 100, Name: "Porto", Lng: -8.61, Lat: 41.15, TripID: &tripB, Category: domain.CategoryCity},
		{UserID: 100, Name: "Spontaneous", Lng: 0, Lat: 0, Category: domain.CategoryNature},
	}
	for _, l := range locations {
		s.Require().NoError(s.locationRepo.Create(s.ctx, l))
	}

	stats, err := s.repo.Recalculate(s.ctx, 100)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(2, stats.CountriesVisited)
	s.Equal(4, stats.TotalLocations)
	s.Equal(2, stats.TotalTrips, "trips are counted per distinct trip id")
}

func (s *UserStatsRepositoryTestSuite) TestRecalculate_UpsertsExistingRow() {
	first, err := s.repo.Recalculate(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(0, first.CountriesVisited)

	s.Require().NoError(s.statusRepo.Replace(s.ctx, &domain.UserCountryStatus{
		UserID: 100, CountryID: s.countryIDs["ES"], Status: domain.StatusVisited,
	}))

	second, err := s.repo.Recalculate(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(1, second.CountriesVisited)

	var count int
	err = s.testDB.DB.GetContext(s.ctx, &count,
		`SELECT COUNT(*) FROM user_geo_statistics WHERE user_id = $1`, int64(100))
	s.NoError(err)
	s.Equal(1, count, "recalculation must upsert, not insert")
}

func (s *UserStatsRepositoryTestSuite) TestGet_AfterRecalculate() {
	_, err := s.repo.Recalculate(s.ctx, 100)
	s.Require().NoError(err)

	stats, err := s.repo.Get(s.ctx, 100)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(int64(100), stats.UserID)
}

func TestUserStatsRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserStatsRepositoryTestSuite))
}
