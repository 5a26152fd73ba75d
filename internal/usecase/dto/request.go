package dto

import "time"

// SetCountryStatusRequest marks a country as visited, planned or
// wishlist for the authenticated user.
type SetCountryStatusRequest struct {
	CountryCode string     `json:"countryCode" validate:"required,len=2,alpha"`
	Status      string     `json:"status" validate:"required,oneof=visited planned wishlist"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// NearbyCountriesRequest searches for countries around a point. A zero
// radius falls back to the configured default.
type NearbyCountriesRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lng      float64 `json:"lng" validate:"min=-180,max=180"`
	RadiusKm float64 `json:"radiusKm" validate:"omitempty,min=0"`
}

// SearchCountriesRequest is a free-text catalog search. An empty query
// is valid and yields an empty result list.
type SearchCountriesRequest struct {
	Query string `json:"query" validate:"max=100"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// CreateLocationRequest records a geotagged point of interest. The
// country is resolved from the coordinates server-side.
type CreateLocationRequest struct {
	TripID      *string    `json:"tripId,omitempty" validate:"omitempty,uuid"`
	Name        string     `json:"name" validate:"required,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Lat         float64    `json:"lat" validate:"min=-90,max=90"`
	Lng         float64    `json:"lng" validate:"min=-180,max=180"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	Rating      *int       `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Category    string     `json:"category" validate:"required"`
}

// UpdateLocationRequest rewrites a location. Moving the point re-runs
// country resolution.
type UpdateLocationRequest struct {
	TripID      *string    `json:"tripId,omitempty" validate:"omitempty,uuid"`
	Name        string     `json:"name" validate:"required,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Lat         float64    `json:"lat" validate:"min=-90,max=90"`
	Lng         float64    `json:"lng" validate:"min=-180,max=180"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	Rating      *int       `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Category    string     `json:"category" validate:"required"`
}

// NearbyLocationsRequest searches the user's own locations around a point.
type NearbyLocationsRequest struct {
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lng       float64 `json:"lng" validate:"min=-180,max=180"`
	RadiusKm  float64 `json:"radiusKm" validate:"omitempty,min=0"`
	ExcludeID string  `json:"excludeId,omitempty" validate:"omitempty,uuid"`
	Limit     int     `json:"limit" validate:"omitempty,min=1,max=100"`
}
