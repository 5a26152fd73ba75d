package domain

import (
	"encoding/json"
	"fmt"
)

// GeoJSON geometry types handled by the catalog.
const (
	GeometryPoint        = "Point"
	GeometryPolygon      = "Polygon"
	GeometryMultiPolygon = "MultiPolygon"
)

// Geometry is a GeoJSON geometry with coordinates kept raw so that
// Polygon and MultiPolygon shapes round-trip byte-for-byte between the
// database and API responses.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ParseGeometry decodes a GeoJSON geometry from its serialized form.
func ParseGeometry(data []byte) (*Geometry, error) {
	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}
	if g.Type == "" {
		return nil, fmt.Errorf("parse geometry: missing type")
	}
	return &g, nil
}

// AsMultiPolygon returns the geometry coordinates normalized to
// MultiPolygon form. A Polygon is wrapped as a single-element
// MultiPolygon; other geometry types are rejected.
func (g *Geometry) AsMultiPolygon() ([][][][]float64, error) {
	switch g.Type {
	case GeometryMultiPolygon:
		var multi [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &multi); err != nil {
			return nil, fmt.Errorf("decode multipolygon: %w", err)
		}
		return multi, nil
	case GeometryPolygon:
		var polygon [][][]float64
		if err := json.Unmarshal(g.Coordinates, &polygon); err != nil {
			return nil, fmt.Errorf("decode polygon: %w", err)
		}
		return [][][][]float64{polygon}, nil
	default:
		return nil, fmt.Errorf("geometry type %q is not a polygon", g.Type)
	}
}

// NewPointGeometry builds a GeoJSON Point geometry from lng/lat.
func NewPointGeometry(lng, lat float64) *Geometry {
	coords, _ := json.Marshal([]float64{lng, lat})
	return &Geometry{Type: GeometryPoint, Coordinates: coords}
}

// Feature is a GeoJSON Feature as served to map clients.
type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is the top-level GeoJSON document for the world map.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeatureCollection wraps features into a FeatureCollection, never
// emitting a null features array.
func NewFeatureCollection(features []Feature) *FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// Point is a lng/lat coordinate pair.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}
