package seeder

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
)

// rawFeature is one entry of the world-countries GeoJSON dataset. The
// properties vary between dataset releases, so everything is optional
// and decoded leniently.
type rawFeature struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Properties rawProperties    `json:"properties"`
	Geometry   *domain.Geometry `json:"geometry"`
}

type rawProperties struct {
	Name      string   `json:"name"`
	IsoA2     string   `json:"iso_a2"`
	IsoA3     string   `json:"iso_a3"`
	Continent *string  `json:"continent"`
	Capital   *string  `json:"capital"`
	PopEst    *float64 `json:"pop_est"`
	AreaSqKm  *float64 `json:"area_sq_km"`
}

type rawCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

// missingAlpha2 patches dataset entries that ship the "-99" sentinel
// instead of a real alpha-2 code.
var missingAlpha2 = map[string]string{
	"FRA": "FR",
	"NOR": "NO",
	"KOS": "XK",
}

// ParseFile reads a world-countries GeoJSON file into catalog entries.
// Features without a resolvable alpha-2 code or without polygon geometry
// are skipped and reported in the returned skip count.
func ParseFile(path string) ([]*domain.Country, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read boundaries file: %w", err)
	}
	return Parse(data)
}

// Parse decodes the dataset from memory. Split from ParseFile for tests.
func Parse(data []byte) ([]*domain.Country, int, error) {
	var collection rawCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, 0, fmt.Errorf("decode boundaries: %w", err)
	}
	if collection.Type != "FeatureCollection" {
		return nil, 0, fmt.Errorf("unexpected document type %q", collection.Type)
	}

	countries := make([]*domain.Country, 0, len(collection.Features))
	skipped := 0

	for _, f := range collection.Features {
		country, err := toCountry(f)
		if err != nil {
			skipped++
			continue
		}
		countries = append(countries, country)
	}

	return countries, skipped, nil
}

func toCountry(f rawFeature) (*domain.Country, error) {
	if f.Geometry == nil {
		return nil, fmt.Errorf("feature %q has no geometry", f.ID)
	}
	if f.Geometry.Type != domain.GeometryPolygon && f.Geometry.Type != domain.GeometryMultiPolygon {
		return nil, fmt.Errorf("feature %q has non-polygon geometry %q", f.ID, f.Geometry.Type)
	}

	alpha3 := strings.ToUpper(f.Properties.IsoA3)
	if alpha3 == "" || alpha3 == "-99" {
		alpha3 = strings.ToUpper(f.ID)
	}

	alpha2 := strings.ToUpper(f.Properties.IsoA2)
	if alpha2 == "" || alpha2 == "-99" {
		alpha2 = missingAlpha2[alpha3]
	}
	if len(alpha2) != 2 {
		return nil, fmt.Errorf("feature %q has no alpha-2 code", f.ID)
	}
	if len(alpha3) != 3 {
		return nil, fmt.Errorf("feature %q has no alpha-3 code", f.ID)
	}

	name := f.Properties.Name
	if name == "" {
		return nil, fmt.Errorf("feature %q has no name", f.ID)
	}

	country := &domain.Country{
		IsoAlpha2: alpha2,
		IsoAlpha3: alpha3,
		Name:      name,
		Continent: f.Properties.Continent,
		Capital:   f.Properties.Capital,
		AreaSqKm:  f.Properties.AreaSqKm,
		Geometry:  f.Geometry,
	}

	if f.Properties.PopEst != nil {
		pop := int64(*f.Properties.PopEst)
		country.Population = &pop
	}

	if lng, lat, ok := geometryCentroid(f.Geometry); ok {
		country.Centroid = &domain.Point{Lng: lng, Lat: lat}
	}

	return country, nil
}

// geometryCentroid averages every boundary vertex. Matches what the
// database backends compute for rows imported without a centroid.
func geometryCentroid(g *domain.Geometry) (float64, float64, bool) {
	multi, err := g.AsMultiPolygon()
	if err != nil {
		return 0, 0, false
	}

	var points [][2]float64
	for _, polygon := range multi {
		for _, ring := range polygon {
			for _, coord := range ring {
				if len(coord) >= 2 {
					points = append(points, [2]float64{coord[0], coord[1]})
				}
			}
		}
	}
	if len(points) == 0 {
		return 0, 0, false
	}

	lng, lat := utils.Centroid(points)
	return lng, lat, true
}
