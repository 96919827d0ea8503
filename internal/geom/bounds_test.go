package geom

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func square(x0, y0, size float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0}}
}

func TestComputeBoundsUnitSquare(t *testing.T) {
	d := Dataset{Features: []Feature{NewPolygonFeature("sq", orb.Polygon{square(0, 0, 1)})}}
	b := ComputeBounds(d)
	assert.Equal(t, Bounds{MinLng: 0, MaxLng: 1, MinLat: 0, MaxLat: 1}, b)
	assert.False(t, b.IsEmpty())
	assert.False(t, b.IsDegenerate())
}

func TestComputeBoundsEmpty(t *testing.T) {
	b := ComputeBounds(Dataset{})
	assert.True(t, math.IsInf(b.MinLng, 1))
	assert.True(t, math.IsInf(b.MaxLng, -1))
	assert.True(t, math.IsInf(b.MinLat, 1))
	assert.True(t, math.IsInf(b.MaxLat, -1))
	assert.True(t, b.IsEmpty())
	assert.True(t, b.IsDegenerate())
}

func TestComputeBoundsSinglePointIsDegenerate(t *testing.T) {
	d := Dataset{Features: []Feature{NewPolygonFeature("pt", orb.Polygon{{{3, 4}}})}}
	b := ComputeBounds(d)
	assert.False(t, b.IsEmpty())
	assert.True(t, b.IsDegenerate())
}

func TestComputeBoundsIncludesHolesAndParts(t *testing.T) {
	mp := orb.MultiPolygon{
		{square(0, 0, 1)},
		{square(10, -5, 2), square(10.5, -4.5, 0.5)},
	}
	d := Dataset{Features: []Feature{NewMultiPolygonFeature("mp", mp)}}
	b := ComputeBounds(d)
	assert.Equal(t, Bounds{MinLng: 0, MaxLng: 12, MinLat: -5, MaxLat: 1}, b)
}

func TestBoundsOrderIndependent(t *testing.T) {
	a := NewPolygonFeature("a", orb.Polygon{square(-3, 2, 1)})
	b := NewPolygonFeature("b", orb.Polygon{square(5, -7, 4)})
	assert.Equal(t,
		ComputeBounds(Dataset{Features: []Feature{a, b}}),
		ComputeBounds(Dataset{Features: []Feature{b, a}}))
}

// TestBoundsProperties checks that every coordinate lies inside the computed box.
func TestBoundsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	coord := gen.SliceOfN(2, gen.Float64Range(-180, 180))
	properties.Property("bounds enclose every coordinate", prop.ForAll(
		func(raw [][]float64) bool {
			ring := make(orb.Ring, 0, len(raw))
			for _, c := range raw {
				ring = append(ring, orb.Point{c[0], c[1]})
			}
			d := Dataset{Features: []Feature{NewPolygonFeature("r", orb.Polygon{ring})}}
			b := ComputeBounds(d)
			for _, p := range ring {
				if !b.Contains(p) {
					return false
				}
			}
			return b.MinLng <= b.MaxLng && b.MinLat <= b.MaxLat
		},
		gen.SliceOfN(12, coord),
	))

	properties.TestingRun(t)
}
