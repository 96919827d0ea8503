package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// GeometryKind tags which of the two polygonal shapes a Feature carries.
type GeometryKind int

const (
	Polygon GeometryKind = iota
	MultiPolygon
)

func (k GeometryKind) String() string {
	switch k {
	case Polygon:
		return "Polygon"
	case MultiPolygon:
		return "MultiPolygon"
	}
	return fmt.Sprintf("GeometryKind(%d)", int(k))
}

// Feature is a named polygon or multipolygon. A Polygon feature has exactly one
// ring group (outer ring first, holes after); a MultiPolygon has one group per part.
type Feature struct {
	Name       string
	Kind       GeometryKind
	Groups     []orb.Polygon
	Properties map[string]any
}

func NewPolygonFeature(name string, p orb.Polygon) Feature {
	return Feature{Name: name, Kind: Polygon, Groups: []orb.Polygon{p}}
}

func NewMultiPolygonFeature(name string, mp orb.MultiPolygon) Feature {
	return Feature{Name: name, Kind: MultiPolygon, Groups: []orb.Polygon(mp)}
}

// Rings flattens every ring of every group, holes included.
func (f Feature) Rings() []orb.Ring {
	var out []orb.Ring
	for _, g := range f.Groups {
		out = append(out, g...)
	}
	return out
}

// OutlineRings returns the rings the render pass traces: the outer ring of a
// Polygon, or every ring of every part of a MultiPolygon.
func (f Feature) OutlineRings() []orb.Ring {
	if f.Kind == Polygon {
		if len(f.Groups) == 0 || len(f.Groups[0]) == 0 {
			return nil
		}
		return []orb.Ring{f.Groups[0][0]}
	}
	return f.Rings()
}

// Geometry returns the orb geometry matching the feature's kind.
func (f Feature) Geometry() orb.Geometry {
	if f.Kind == Polygon {
		if len(f.Groups) == 0 {
			return orb.Polygon{}
		}
		return f.Groups[0]
	}
	return orb.MultiPolygon(f.Groups)
}

// Dataset is the ordered, load-once input of the map engine.
type Dataset struct {
	Features []Feature
	// Skipped counts input features whose geometry was not polygonal.
	Skipped int
}

// Len reports the number of features.
func (d Dataset) Len() int { return len(d.Features) }

// VertexCount is the total number of coordinates across all rings.
func (d Dataset) VertexCount() int {
	n := 0
	for _, f := range d.Features {
		for _, r := range f.Rings() {
			n += len(r)
		}
	}
	return n
}

// add appends g as a feature when it is polygonal; other geometry kinds are counted
// as skipped.
func (d *Dataset) add(name string, props map[string]any, g orb.Geometry) {
	switch v := g.(type) {
	case orb.Polygon:
		f := NewPolygonFeature(name, v)
		f.Properties = props
		d.Features = append(d.Features, f)
	case orb.MultiPolygon:
		f := NewMultiPolygonFeature(name, v)
		f.Properties = props
		d.Features = append(d.Features, f)
	case orb.Ring:
		f := NewPolygonFeature(name, orb.Polygon{v})
		f.Properties = props
		d.Features = append(d.Features, f)
	case orb.Collection:
		for _, sub := range v {
			d.add(name, props, sub)
		}
	default:
		d.Skipped++
	}
}
