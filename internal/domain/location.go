package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location categories.
const (
	CategoryCity          = "city"
	CategoryLandmark      = "landmark"
	CategoryNature        = "nature"
	CategoryRestaurant    = "restaurant"
	CategoryAccommodation = "accommodation"
	CategoryTransport     = "transport"
	CategoryActivity      = "activity"
	CategoryShopping      = "shopping"
	CategoryNightlife     = "nightlife"
	CategoryCultural      = "cultural"
)

// Categories lists every valid location category.
var Categories = []string{
	CategoryCity, CategoryLandmark, CategoryNature, CategoryRestaurant,
	CategoryAccommodation, CategoryTransport, CategoryActivity,
	CategoryShopping, CategoryNightlife, CategoryCultural,
}

// ValidCategory reports whether c is a known location category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Location is a geotagged point of interest owned by a user. CountryID is
// resolved automatically from the coordinates when not supplied; a point
// outside every boundary simply leaves it nil.
type Location struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TripID      *uuid.UUID `json:"tripId,omitempty" db:"trip_id"`
	UserID      int64      `json:"userId" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	Lng         float64    `json:"lng" db:"lng"`
	Lat         float64    `json:"lat" db:"lat"`
	CountryID   *int64     `json:"countryId,omitempty" db:"country_id"`
	VisitDate   *time.Time `json:"visitDate,omitempty" db:"visit_date"`
	Rating      *int       `json:"rating,omitempty" db:"rating"`
	Category    string     `json:"category" db:"category"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// ToGeoJSONFeature converts the location into a Feature for map display.
func (l *Location) ToGeoJSONFeature() Feature {
	return Feature{
		Type:     "Feature",
		ID:       l.ID.String(),
		Geometry: NewPointGeometry(l.Lng, l.Lat),
		Properties: map[string]interface{}{
			"name":      l.Name,
			"category":  l.Category,
			"rating":    l.Rating,
			"visitDate": l.VisitDate,
			"countryId": l.CountryID,
		},
	}
}

// LocationDistance is a location annotated with its distance from a
// reference point.
type LocationDistance struct {
	Location
	DistanceKm float64 `json:"distanceKm" db:"distance_km"`
}
