package domain

import "time"

// Country is one row of the boundary catalog. ISO codes are unique and
// immutable once imported; geometry is stored natively under PostGIS or
// as serialized GeoJSON plus a precomputed centroid on the fallback path.
type Country struct {
	ID         int64     `json:"id" db:"id"`
	IsoAlpha2  string    `json:"isoAlpha2" db:"iso_alpha2"`
	IsoAlpha3  string    `json:"isoAlpha3" db:"iso_alpha3"`
	Name       string    `json:"name" db:"name"`
	Continent  *string   `json:"continent,omitempty" db:"continent"`
	Capital    *string   `json:"capital,omitempty" db:"capital"`
	Population *int64    `json:"population,omitempty" db:"population"`
	AreaSqKm   *float64  `json:"areaSqKm,omitempty" db:"area_sq_km"`
	Geometry   *Geometry `json:"geometry,omitempty" db:"-"`
	Centroid   *Point    `json:"centroid,omitempty" db:"-"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// ToGeoJSONFeature converts the country into a map-ready Feature. The
// feature id is the alpha-2 code and the status property carries the
// requesting user's relationship to the country ("default" when none).
func (c *Country) ToGeoJSONFeature(status string) Feature {
	if status == "" {
		status = StatusDefault
	}
	return Feature{
		Type:     "Feature",
		ID:       c.IsoAlpha2,
		Geometry: c.Geometry,
		Properties: map[string]interface{}{
			"isoAlpha2":  c.IsoAlpha2,
			"isoAlpha3":  c.IsoAlpha3,
			"name":       c.Name,
			"continent":  c.Continent,
			"capital":    c.Capital,
			"population": c.Population,
			"areaSqKm":   c.AreaSqKm,
			"status":     status,
		},
	}
}

// CountryDistance is a catalog entry annotated with its distance from a
// reference point, as returned by radius searches.
type CountryDistance struct {
	Country
	DistanceKm float64 `json:"distanceKm" db:"distance_km"`
}

// CountryWithStatus pairs a catalog entry with one user's status for it.
type CountryWithStatus struct {
	Country
	Status string `json:"status" db:"status"`
}
