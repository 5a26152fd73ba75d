package domain

import "time"

// ContinentStats is one bucket of the catalog-wide continent aggregation.
// Countries without a continent are excluded from the aggregation.
type ContinentStats struct {
	Continent       string  `json:"continent" db:"continent"`
	CountryCount    int     `json:"countryCount" db:"country_count"`
	AvgAreaSqKm     float64 `json:"avgAreaSqKm" db:"avg_area"`
	TotalPopulation int64   `json:"totalPopulation" db:"total_population"`
}

// ContinentVisitCount is one bucket of a user's visited-by-continent
// breakdown.
type ContinentVisitCount struct {
	Continent string `json:"continent" db:"continent"`
	Count     int    `json:"count" db:"count"`
}

// UserGeoStatistics is the cached per-user summary upserted after every
// status-changing operation. A materialized view, not a source of truth:
// it may be briefly stale between writes.
type UserGeoStatistics struct {
	UserID           int64     `json:"userId" db:"user_id"`
	CountriesVisited int       `json:"countriesVisited" db:"countries_visited"`
	TotalLocations   int       `json:"totalLocations" db:"total_locations"`
	TotalTrips       int       `json:"totalTrips" db:"total_trips"`
	LastCalculated   time.Time `json:"lastCalculated" db:"last_calculated"`
}

// GeographicStats is the composed per-user statistics API payload.
type GeographicStats struct {
	VisitedByContinent []ContinentVisitCount `json:"visitedByContinent"`
	TotalDistanceKm    float64               `json:"totalDistanceKm"`
	Centroid           Point                 `json:"centroid"`
	TotalLocations     int                   `json:"totalLocations"`
	CountriesVisited   int                   `json:"countriesVisited"`
}
