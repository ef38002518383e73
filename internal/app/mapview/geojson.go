package mapview

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// GeoJSON renders markers as a FeatureCollection of points. Coordinates are
// written longitude first, as GeoJSON requires.
func GeoJSON(markers []Marker) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(markers))}
	for _, m := range markers {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       m.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{m.Coordinate.Longitude, m.Coordinate.Latitude}),
			Properties: map[string]interface{}{
				"kind":     string(m.Kind),
				"rideId":   string(m.RideID),
				"title":    m.Title,
				"selected": m.Selected,
			},
		})
	}
	b, err := json.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("encode markers: %w", err)
	}
	return b, nil
}
