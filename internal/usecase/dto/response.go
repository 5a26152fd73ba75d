package dto

import (
	"time"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// CountryResponse is a catalog entry without geometry, as returned by
// search and nearby queries.
type CountryResponse struct {
	IsoAlpha2  string   `json:"isoAlpha2"`
	IsoAlpha3  string   `json:"isoAlpha3"`
	Name       string   `json:"name"`
	Continent  *string  `json:"continent,omitempty"`
	Capital    *string  `json:"capital,omitempty"`
	Population *int64   `json:"population,omitempty"`
	AreaSqKm   *float64 `json:"areaSqKm,omitempty"`
}

// NewCountryResponse maps a catalog entry to its API shape.
func NewCountryResponse(c *domain.Country) CountryResponse {
	return CountryResponse{
		IsoAlpha2:  c.IsoAlpha2,
		IsoAlpha3:  c.IsoAlpha3,
		Name:       c.Name,
		Continent:  c.Continent,
		Capital:    c.Capital,
		Population: c.Population,
		AreaSqKm:   c.AreaSqKm,
	}
}

// NearbyCountryResponse annotates a country with its distance from the
// query point, rounded to two decimals.
type NearbyCountryResponse struct {
	CountryResponse
	DistanceKm float64 `json:"distanceKm"`
}

// CountryStatusResponse echoes a stored status row back to the client.
type CountryStatusResponse struct {
	CountryCode string     `json:"countryCode"`
	CountryName string     `json:"countryName"`
	Status      string     `json:"status"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ResolvedCountryResponse is the containment answer for a point. Country
// is nil when the point is outside every boundary.
type ResolvedCountryResponse struct {
	Country *CountryResponse `json:"country"`
}

// LocationResponse is a stored location with its resolved country code.
type LocationResponse struct {
	ID          string     `json:"id"`
	TripID      *string    `json:"tripId,omitempty"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	CountryCode *string    `json:"countryCode,omitempty"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NearbyLocationResponse annotates a location with its distance from
// the query point.
type NearbyLocationResponse struct {
	LocationResponse
	DistanceKm float64 `json:"distanceKm"`
}
