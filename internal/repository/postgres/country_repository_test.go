package postgres_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/repository/postgres/testhelpers"
)

// boxGeometry builds a rectangular MultiPolygon for seeding test countries.
func boxGeometry(minLng, minLat, maxLng, maxLat float64) *domain.Geometry {
	coords := fmt.Sprintf(
		"[[[[%[1]f,%[2]f],[%[3]f,%[2]f],[%[3]f,%[4]f],[%[1]f,%[4]f],[%[1]f,%[2]f]]]]",
		minLng, minLat, maxLng, maxLat,
	)
	return &domain.Geometry{
		Type:        domain.GeometryMultiPolygon,
		Coordinates: json.RawMessage(coords),
	}
}

// testCountries are three disjoint boxes roughly where Spain, Portugal
// and France sit, so containment and radius assertions hold on both
// spatial backends.
func testCountries() []*domain.Country {
	europe := "Europe"
	madrid := "Madrid"
	lisbon := "Lisbon"
	paris := "Paris"
	popES := int64(47000000)
	popPT := int64(10000000)
	popFR := int64(67000000)

	return []*domain.Country{
		{
			IsoAlpha2:  "ES",
			IsoAlpha3:  "ESP",
			Name:       "Spain",
			Continent:  &europe,
			Capital:    &madrid,
			Population: &popES,
			Geometry:   boxGeometry(-6, 36, 3, 43),
			Centroid:   &domain.Point{Lng: -1.5, Lat: 39.5},
		},
		{
			IsoAlpha2:  "PT",
			IsoAlpha3:  "PRT",
			Name:       "Portugal",
			Continent:  &europe,
			Capital:    &lisbon,
			Population: &popPT,
			Geometry:   boxGeometry(-9.5, 37, -6.5, 42),
			Centroid:   &domain.Point{Lng: -8, Lat: 39.5},
		},
		{
			IsoAlpha2:  "FR",
			IsoAlpha3:  "FRA",
			Name:       "France",
			Continent:  &europe,
			Capital:    &paris,
			Population: &popFR,
			Geometry:   boxGeometry(-4, 43.5, 7, 51),
			Centroid:   &domain.Point{Lng: 1.5, Lat: 47.25},
		},
	}
}

type CountryRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.CountryRepository
	ctx    context.Context
}

func (s *CountryRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := s.testDB.Cleanup(context.Background())
	s.NoError(err, "Failed to cleanup test database")

	// Apply migrations (skipped silently when tables already exist)
	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	s.repo = testhelpers.NewCountryRepositoryForTest(s.testDB)

	for _, c := range testCountries() {
		s.Require().NoError(s.repo.Upsert(context.Background(), c))
	}
}

func (s *CountryRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(context.Background())
		s.testDB.Close()
	}
}

func (s *CountryRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *CountryRepositoryTestSuite) TestGetAll() {
	countries, err := s.repo.GetAll(s.ctx)

	s.NoError(err)
	s.Len(countries, 3)
	for _, c := range countries {
		s.NotNil(c.Geometry, "country %s should carry geometry", c.IsoAlpha2)
		s.NotNil(c.Centroid, "country %s should carry a centroid", c.IsoAlpha2)
	}
}

func (s *CountryRepositoryTestSuite) TestFindByCode() {
	country, err := s.repo.FindByCode(s.ctx, "ES")

	s.NoError(err)
	s.Require().NotNil(country)
	s.Equal("Spain", country.Name)
	s.Equal("ESP", country.IsoAlpha3)
	s.Require().NotNil(country.Continent)
	s.Equal("Europe", *country.Continent)
}

func (s *CountryRepositoryTestSuite) TestFindByCode_CaseInsensitive() {
	country, err := s.repo.FindByCode(s.ctx, "es")

	s.NoError(err)
	s.Require().NotNil(country)
	s.Equal("ES", country.IsoAlpha2)
}

func (s *CountryRepositoryTestSuite) TestFindByCode_NotFound() {
	country, err := s.repo.FindByCode(s.ctx, "XX")

	s.NoError(err)
	s.Nil(country)
}

func (s *CountryRepositoryTestSuite) TestSearch_PrefixMatchRanksFirst() {
	countries, err := s.repo.Search(s.ctx, "fra", 10)

	s.NoError(err)
	s.Require().NotEmpty(countries)
	s.Equal("FR", countries[0].IsoAlpha2)
}

func (s *CountryRepositoryTestSuite) TestSearch_AlphaCodePrefix() {
	countries, err := s.repo.Search(s.ctx, "pt", 10)

	s.NoError(err)
	s.Require().NotEmpty(countries)
	s.Equal("PT", countries[0].IsoAlpha2)
}

func (s *CountryRepositoryTestSuite) TestSearch_NoMatches() {
	countries, err := s.repo.Search(s.ctx, "zzzz", 10)

	s.NoError(err)
	s.Empty(countries)
}

func (s *CountryRepositoryTestSuite) TestStatsByContinent() {
	stats, err := s.repo.StatsByContinent(s.ctx)

	s.NoError(err)
	s.Require().Len(stats, 1)
	s.Equal("Europe", stats[0].Continent)
	s.Equal(3, stats[0].CountryCount)
	s.Equal(int64(124000000), stats[0].TotalPopulation)
}

func (s *CountryRepositoryTestSuite) TestFindByPoint_InsideCountry() {
	// Madrid
	country, err := s.repo.FindByPoint(s.ctx, -3.7, 40.4)

	s.NoError(err)
	s.Require().NotNil(country)
	s.Equal("ES", country.IsoAlpha2)
}

func (s *CountryRepositoryTestSuite) TestFindByPoint_OpenSea() {
	// Mid-Atlantic
	country, err := s.repo.FindByPoint(s.ctx, -40, 30)

	s.NoError(err)
	s.Nil(country)
}

func (s *CountryRepositoryTestSuite) TestFindInRadius_SortedByDistance() {
	countries, err := s.repo.FindInRadius(s.ctx, -3.7, 40.4, 2000, 20)

	s.NoError(err)
	s.Require().Len(countries, 3)
	s.Equal("ES", countries[0].IsoAlpha2)
	for i := 1; i < len(countries); i++ {
		s.GreaterOrEqual(countries[i].DistanceKm, countries[i-1].DistanceKm)
	}
}

func (s *CountryRepositoryTestSuite) TestFindInRadius_RespectsLimit() {
	countries, err := s.repo.FindInRadius(s.ctx, -3.7, 40.4, 2000, 1)

	s.NoError(err)
	s.Require().Len(countries, 1)
	s.Equal("ES", countries[0].IsoAlpha2)
}

func (s *CountryRepositoryTestSuite) TestFindInRadius_EmptyFarAway() {
	countries, err := s.repo.FindInRadius(s.ctx, 150, -40, 100, 20)

	s.NoError(err)
	s.Empty(countries)
}

func (s *CountryRepositoryTestSuite) TestGetAllWithUserStatus() {
	spain, err := s.repo.FindByCode(s.ctx, "ES")
	s.Require().NoError(err)
	s.Require().NotNil(spain)

	_, err = s.testDB.DB.ExecContext(s.ctx,
		`INSERT INTO user_country_statuses (user_id, country_id, status) VALUES ($1, $2, $3)`,
		int64(9001), spain.ID, domain.StatusVisited,
	)
	s.Require().NoError(err)
	defer func() {
		_, _ = s.testDB.DB.ExecContext(s.ctx,
			`DELETE FROM user_country_statuses WHERE user_id = $1`, int64(9001))
	}()

	countries, err := s.repo.GetAllWithUserStatus(s.ctx, 9001)

	s.NoError(err)
	s.Require().Len(countries, 3)

	statuses := make(map[string]string)
	for _, c := range countries {
		statuses[c.IsoAlpha2] = c.Status
	}
	s.Equal(domain.StatusVisited, statuses["ES"])
	s.Equal(domain.StatusDefault, statuses["PT"])
	s.Equal(domain.StatusDefault, statuses["FR"])
}

func (s *CountryRepositoryTestSuite) TestUpsert_UpdatesExistingRow() {
	updated := testCountries()[0]
	updated.Name = "Kingdom of Spain"

	s.Require().NoError(s.repo.Upsert(s.ctx, updated))
	defer func() {
		restore := testCountries()[0]
		s.Require().NoError(s.repo.Upsert(s.ctx, restore))
	}()

	country, err := s.repo.FindByCode(s.ctx, "ES")
	s.NoError(err)
	s.Require().NotNil(country)
	s.Equal("Kingdom of Spain", country.Name)

	all, err := s.repo.GetAll(s.ctx)
	s.NoError(err)
	s.Len(all, 3, "upsert must not create a duplicate row")
}

func (s *CountryRepositoryTestSuite) TestUpsert_RejectsDuplicateAlpha3() {
	// A different alpha-2 with an already-taken alpha-3 must not slip
	// past the unique constraint and show up twice in search results.
	_, err := s.testDB.DB.ExecContext(s.ctx,
		`INSERT INTO countries (iso_alpha2, iso_alpha3, name) VALUES ('XX', 'ESP', 'Shadow Spain')`)
	s.Error(err)

	countries, err := s.repo.Search(s.ctx, "esp", 10)
	s.NoError(err)
	s.Require().Len(countries, 1)
	s.Equal("ES", countries[0].IsoAlpha2)
}

func (s *CountryRepositoryTestSuite) TestFindByID() {
	spain, err := s.repo.FindByCode(s.ctx, "ES")
	s.Require().NoError(err)
	s.Require().NotNil(spain)

	country, err := s.repo.FindByID(s.ctx, spain.ID)

	s.NoError(err)
	s.Require().NotNil(country)
	s.Equal("ES", country.IsoAlpha2)
}

func (s *CountryRepositoryTestSuite) TestFindByID_NotFound() {
	country, err := s.repo.FindByID(s.ctx, 999999)

	s.NoError(err)
	s.Nil(country)
}

func (s *CountryRepositoryTestSuite) TestRefreshCentroids_FillsMissing() {
	_, err := s.testDB.DB.ExecContext(s.ctx,
		`UPDATE countries SET centroid_lng = NULL, centroid_lat = NULL WHERE iso_alpha2 = 'PT'`)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.RefreshCentroids(s.ctx))

	country, err := s.repo.FindByCode(s.ctx, "PT")
	s.NoError(err)
	s.Require().NotNil(country)
	s.Require().NotNil(country.Centroid)
	s.InDelta(-8, country.Centroid.Lng, 0.5)
	s.InDelta(39.5, country.Centroid.Lat, 0.5)
}

func TestCountryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CountryRepositoryTestSuite))
}
