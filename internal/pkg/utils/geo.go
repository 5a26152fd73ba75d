package utils

import "math"

// KmPerDegree is the planar conversion factor between geographic degrees
// and kilometers (length of one degree of longitude at the equator).
// Distances computed with it are an intentional simplification: they drift
// from geodesic values at high latitudes and over long paths. It matches
// the factor used by the PostGIS-less storage path, so both code paths
// report the same numbers.
const KmPerDegree = 111.32

// DegreeDistance returns the planar distance between two points in degrees.
func DegreeDistance(lng1, lat1, lng2, lat2 float64) float64 {
	dLng := lng2 - lng1
	dLat := lat2 - lat1
	return math.Sqrt(dLng*dLng + dLat*dLat)
}

// DistanceKm returns the approximate distance between two points in
// kilometers using the planar degree distance times KmPerDegree.
func DistanceKm(lng1, lat1, lng2, lat2 float64) float64 {
	return DegreeDistance(lng1, lat1, lng2, lat2) * KmPerDegree
}

// KmToDegrees converts a radius in kilometers to degrees for bounding
// queries on the coordinate-fallback path.
func KmToDegrees(km float64) float64 {
	return km / KmPerDegree
}

// RoundKm rounds a distance to two decimals for API responses.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// PointInRing reports whether the point (lng, lat) lies inside a single
// closed linear ring using the ray-casting rule. Points exactly on the
// boundary may land on either side.
func PointInRing(lng, lat float64, ring [][]float64) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		if (yi > lat) != (yj > lat) &&
			lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// PointInPolygon tests a point against a GeoJSON Polygon coordinate array:
// the first ring is the exterior, any following rings are holes.
func PointInPolygon(lng, lat float64, polygon [][][]float64) bool {
	if len(polygon) == 0 {
		return false
	}
	if !PointInRing(lng, lat, polygon[0]) {
		return false
	}
	for _, hole := range polygon[1:] {
		if PointInRing(lng, lat, hole) {
			return false
		}
	}
	return true
}

// PointInMultiPolygon tests a point against GeoJSON MultiPolygon coordinates.
func PointInMultiPolygon(lng, lat float64, multi [][][][]float64) bool {
	for _, polygon := range multi {
		if PointInPolygon(lng, lat, polygon) {
			return true
		}
	}
	return false
}

// Centroid returns the average point of a coordinate set as (lng, lat).
// Zero values are returned for an empty set.
func Centroid(points [][2]float64) (float64, float64) {
	if len(points) == 0 {
		return 0, 0
	}
	var sumLng, sumLat float64
	for _, p := range points {
		sumLng += p[0]
		sumLat += p[1]
	}
	n := float64(len(points))
	return sumLng / n, sumLat / n
}

// ValidateCoordinates checks that a lng/lat pair is inside WGS84 bounds.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateRadius checks that a search radius is positive and sane
// (up to half the equator).
func ValidateRadius(radiusKm float64) bool {
	return radiusKm > 0 && radiusKm <= 20000
}
