package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

var ErrEmptyWKT = errors.New("empty wkt")

// ParseWKT decodes a POLYGON or MULTIPOLYGON (or a GEOMETRYCOLLECTION of them) into
// a single-feature dataset labelled name.
func ParseWKT(name, s string) (Dataset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dataset{}, ErrEmptyWKT
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Dataset{}, fmt.Errorf("wkt: %w", err)
	}
	var d Dataset
	d.add(name, map[string]any{"name": name}, g)
	if len(d.Features) == 0 {
		return Dataset{}, fmt.Errorf("wkt %s: %w", g.GeoJSONType(), ErrNoFeatures)
	}
	return d, nil
}
