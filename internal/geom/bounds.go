package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Bounds is the geographic bounding box of a dataset. An empty dataset yields
// min = +Inf and max = -Inf on both axes.
type Bounds struct {
	MinLng float64
	MaxLng float64
	MinLat float64
	MaxLat float64
}

func EmptyBounds() Bounds {
	return Bounds{
		MinLng: math.Inf(1),
		MaxLng: math.Inf(-1),
		MinLat: math.Inf(1),
		MaxLat: math.Inf(-1),
	}
}

// ComputeBounds scans every coordinate of every ring of every feature.
func ComputeBounds(d Dataset) Bounds {
	b := EmptyBounds()
	for _, f := range d.Features {
		for _, ring := range f.Rings() {
			for _, p := range ring {
				b = b.Extend(p)
			}
		}
	}
	return b
}

// Extend grows b to include p.
func (b Bounds) Extend(p orb.Point) Bounds {
	lng, lat := p[0], p[1]
	if lng < b.MinLng {
		b.MinLng = lng
	}
	if lng > b.MaxLng {
		b.MaxLng = lng
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	return b
}

// IsEmpty reports whether no coordinate has been seen.
func (b Bounds) IsEmpty() bool {
	return b.MinLng > b.MaxLng || b.MinLat > b.MaxLat
}

// IsDegenerate reports whether the box has no area to divide by: empty, a single
// point, or collapsed on either axis.
func (b Bounds) IsDegenerate() bool {
	return !(b.MaxLng > b.MinLng && b.MaxLat > b.MinLat) ||
		math.IsInf(b.LngRange(), 0) || math.IsInf(b.LatRange(), 0)
}

func (b Bounds) LngRange() float64 { return b.MaxLng - b.MinLng }
func (b Bounds) LatRange() float64 { return b.MaxLat - b.MinLat }

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p orb.Point) bool {
	return p[0] >= b.MinLng && p[0] <= b.MaxLng && p[1] >= b.MinLat && p[1] <= b.MaxLat
}

// Corners returns the four corners in (SW, SE, NE, NW) order.
func (b Bounds) Corners() [4]orb.Point {
	return [4]orb.Point{
		{b.MinLng, b.MinLat},
		{b.MaxLng, b.MinLat},
		{b.MaxLng, b.MaxLat},
		{b.MinLng, b.MaxLat},
	}
}
