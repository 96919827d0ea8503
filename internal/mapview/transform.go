package mapview

import (
	"fmt"

	"polymap/internal/geom"
)

const (
	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// ViewTransform is the affine map from geographic to surface space:
//
//	x = lng*Scale + OffsetX
//	y = height - (lat*Scale + OffsetY)
//
// Scale stays within [MinScale, MaxScale] after every mutation.
type ViewTransform struct {
	Scale    float64
	OffsetX  float64
	OffsetY  float64
	MinScale float64
	MaxScale float64
	Factor   float64
}

// PlanTransform fits bounds into a width x height surface with style.Padding on
// every side, preserving aspect ratio and centering the box.
func PlanTransform(b geom.Bounds, width, height float64, style StyleConfig) (ViewTransform, error) {
	if !(width > 0 && height > 0) {
		return ViewTransform{}, fmt.Errorf("%w: %gx%g", ErrInvalidSurfaceSize, width, height)
	}
	if b.IsDegenerate() {
		return ViewTransform{}, fmt.Errorf("%w: lng [%g, %g] lat [%g, %g]",
			ErrDegenerateBounds, b.MinLng, b.MaxLng, b.MinLat, b.MaxLat)
	}
	lngRange, latRange := b.LngRange(), b.LatRange()
	scaleX := (width - 2*style.Padding) / lngRange
	scaleY := (height - 2*style.Padding) / latRange
	scale := clamp(min(scaleX, scaleY), style.MinScale, style.MaxScale)
	return ViewTransform{
		Scale:    scale,
		OffsetX:  (width-lngRange*scale)/2 - b.MinLng*scale,
		OffsetY:  (height-latRange*scale)/2 - b.MinLat*scale,
		MinScale: style.MinScale,
		MaxScale: style.MaxScale,
		Factor:   style.Factor,
	}, nil
}

// Project maps a geographic coordinate onto a surface of the given height.
func (t ViewTransform) Project(lng, lat, height float64) (x, y float64) {
	x = lng*t.Scale + t.OffsetX
	y = height - (lat*t.Scale + t.OffsetY)
	return x, y
}

// Unproject is the inverse of Project.
func (t ViewTransform) Unproject(x, y, height float64) (lng, lat float64) {
	lng = (x - t.OffsetX) / t.Scale
	lat = (height - y - t.OffsetY) / t.Scale
	return lng, lat
}

// Pan shifts the view by a surface-space delta. The vertical component is negated
// because OffsetY is measured upward from the bottom edge.
func (t ViewTransform) Pan(dx, dy float64) ViewTransform {
	t.OffsetX += dx
	t.OffsetY -= dy
	return t
}

// ZoomAt applies one wheel step at surface point (x, y), keeping the geographic
// point under it fixed. deltaY > 0 zooms out. It reports false when the clamped
// scale is unchanged.
func (t ViewTransform) ZoomAt(x, y, deltaY, height float64) (ViewTransform, bool) {
	lng, lat := t.Unproject(x, y, height)
	factor := zoomInFactor
	if deltaY > 0 {
		factor = zoomOutFactor
	}
	scale := clamp(t.Scale*factor, t.MinScale, t.MaxScale)
	if scale == t.Scale {
		return t, false
	}
	t.Scale = scale
	t.OffsetX = x - lng*scale
	t.OffsetY = (height - y) - lat*scale
	return t, true
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
