package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Contains reports whether p is inside the feature: inside some part's outer ring
// and outside that part's holes.
func (f Feature) Contains(p orb.Point) bool {
	if !f.Geometry().Bound().Contains(p) {
		return false
	}
	for _, g := range f.Groups {
		if len(g) == 0 {
			continue
		}
		if planar.PolygonContains(g, p) {
			return true
		}
	}
	return false
}

// FeatureAt returns the index of the last feature containing p, the one painted on
// top, or -1.
func (d Dataset) FeatureAt(p orb.Point) int {
	for i := len(d.Features) - 1; i >= 0; i-- {
		if d.Features[i].Contains(p) {
			return i
		}
	}
	return -1
}
