package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("parses a valid feature", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"id": "ESP",
					"properties": {
						"name": "Spain",
						"iso_a2": "ES",
						"iso_a3": "ESP",
						"continent": "Europe",
						"capital": "Madrid",
						"pop_est": 46754778
					},
					"geometry": {
						"type": "Polygon",
						"coordinates": [[[-4.0, 40.0], [-2.0, 40.0], [-2.0, 42.0], [-4.0, 42.0], [-4.0, 40.0]]]
					}
				}
			]
		}`)

		countries, skipped, err := Parse(data)

		require.NoError(t, err)
		assert.Equal(t, 0, skipped)
		require.Len(t, countries, 1)

		spain := countries[0]
		assert.Equal(t, "ES", spain.IsoAlpha2)
		assert.Equal(t, "ESP", spain.IsoAlpha3)
		assert.Equal(t, "Spain", spain.Name)
		assert.Equal(t, "Europe", *spain.Continent)
		assert.Equal(t, int64(46754778), *spain.Population)
		require.NotNil(t, spain.Centroid)
		assert.InDelta(t, -3.2, spain.Centroid.Lng, 0.01)
		assert.InDelta(t, 40.8, spain.Centroid.Lat, 0.01)
	})

	t.Run("patches the -99 alpha-2 sentinel from the alpha-3 code", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"id": "FRA",
					"properties": {"name": "France", "iso_a2": "-99", "iso_a3": "FRA"},
					"geometry": {
						"type": "Polygon",
						"coordinates": [[[0.0, 45.0], [5.0, 45.0], [5.0, 50.0], [0.0, 45.0]]]
					}
				}
			]
		}`)

		countries, skipped, err := Parse(data)

		require.NoError(t, err)
		assert.Equal(t, 0, skipped)
		require.Len(t, countries, 1)
		assert.Equal(t, "FR", countries[0].IsoAlpha2)
	})

	t.Run("falls back to the feature id when iso_a3 is missing", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"id": "NOR",
					"properties": {"name": "Norway", "iso_a2": "-99", "iso_a3": "-99"},
					"geometry": {
						"type": "Polygon",
						"coordinates": [[[5.0, 58.0], [10.0, 58.0], [10.0, 62.0], [5.0, 58.0]]]
					}
				}
			]
		}`)

		countries, skipped, err := Parse(data)

		require.NoError(t, err)
		assert.Equal(t, 0, skipped)
		require.Len(t, countries, 1)
		assert.Equal(t, "NO", countries[0].IsoAlpha2)
		assert.Equal(t, "NOR", countries[0].IsoAlpha3)
	})

	t.Run("skips features without resolvable codes or polygon geometry", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"id": "ATA",
					"properties": {"name": "Somewhere", "iso_a2": "-99", "iso_a3": "ATA"},
					"geometry": {
						"type": "Polygon",
						"coordinates": [[[0.0, 0.0], [1.0, 0.0], [1.0, 1.0], [0.0, 0.0]]]
					}
				},
				{
					"type": "Feature",
					"id": "PNT",
					"properties": {"name": "A point", "iso_a2": "PT", "iso_a3": "PNT"},
					"geometry": {"type": "Point", "coordinates": [1.0, 2.0]}
				},
				{
					"type": "Feature",
					"id": "NOG",
					"properties": {"name": "No geometry", "iso_a2": "NG", "iso_a3": "NOG"}
				},
				{
					"type": "Feature",
					"id": "DEU",
					"properties": {"name": "Germany", "iso_a2": "DE", "iso_a3": "DEU"},
					"geometry": {
						"type": "MultiPolygon",
						"coordinates": [[[[6.0, 47.0], [15.0, 47.0], [15.0, 55.0], [6.0, 47.0]]]]
					}
				}
			]
		}`)

		countries, skipped, err := Parse(data)

		require.NoError(t, err)
		assert.Equal(t, 3, skipped)
		require.Len(t, countries, 1)
		assert.Equal(t, "DE", countries[0].IsoAlpha2)
	})

	t.Run("rejects a non-FeatureCollection document", func(t *testing.T) {
		_, _, err := Parse([]byte(`{"type": "Feature"}`))
		assert.Error(t, err)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, _, err := Parse([]byte(`not json`))
		assert.Error(t, err)
	})
}
