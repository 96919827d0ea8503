package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

var (
	ErrNoFeatures  = errors.New("no polygon features found")
	ErrMissingType = errors.New("invalid geojson: missing type")
)

// LoadGeoJSON reads a GeoJSON file into a Dataset.
func LoadGeoJSON(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return DecodeGeoJSON(data)
}

// DecodeGeoJSON accepts a FeatureCollection, a single Feature or a bare geometry.
// Only Polygon and MultiPolygon geometries become features; the rest are counted in
// Dataset.Skipped.
func DecodeGeoJSON(data []byte) (Dataset, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Dataset{}, err
	}
	var d Dataset
	switch head.Type {
	case "":
		return Dataset{}, ErrMissingType
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Dataset{}, fmt.Errorf("feature collection: %w", err)
		}
		for _, f := range fc.Features {
			d.addFeature(f)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Dataset{}, fmt.Errorf("feature: %w", err)
		}
		d.addFeature(f)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Dataset{}, fmt.Errorf("geometry: %w", err)
		}
		d.add("", nil, g.Geometry())
	}
	if len(d.Features) == 0 {
		return Dataset{}, ErrNoFeatures
	}
	return d, nil
}

func (d *Dataset) addFeature(f *geojson.Feature) {
	if f == nil || f.Geometry == nil {
		d.Skipped++
		return
	}
	props := map[string]any(f.Properties)
	d.add(f.Properties.MustString("name", ""), props, f.Geometry)
}
