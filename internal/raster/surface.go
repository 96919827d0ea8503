// Package raster draws map frames into an in-memory RGBA image.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"
)

type point struct{ x, y float64 }

// Surface is a 2D context over an *image.RGBA. Fill and stroke are anti-aliased
// by golang.org/x/image/vector.
type Surface struct {
	img       *image.RGBA
	ras       *vector.Rasterizer
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	paths     [][]point
}

func NewSurface(w, h int) *Surface {
	return &Surface{
		img:       image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:       vector.NewRasterizer(w, h),
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
	}
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) BeginPath() { s.paths = s.paths[:0] }

func (s *Surface) MoveTo(x, y float64) {
	s.paths = append(s.paths, []point{{x, y}})
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.paths) == 0 {
		s.MoveTo(x, y)
		return
	}
	last := len(s.paths) - 1
	s.paths[last] = append(s.paths[last], point{x, y})
}

// Fill paints the interior of every subpath, closing each implicitly.
func (s *Surface) Fill() {
	b := s.img.Bounds()
	s.ras.Reset(b.Dx(), b.Dy())
	n := 0
	for _, sub := range s.paths {
		if len(sub) < 3 {
			continue
		}
		s.ras.MoveTo(float32(sub[0].x), float32(sub[0].y))
		for _, p := range sub[1:] {
			s.ras.LineTo(float32(p.x), float32(p.y))
		}
		s.ras.ClosePath()
		n++
	}
	if n > 0 {
		s.ras.Draw(s.img, b, image.NewUniform(s.fill), image.Point{})
	}
}

// Stroke paints every segment as a quad of the current line width.
func (s *Surface) Stroke() {
	b := s.img.Bounds()
	s.ras.Reset(b.Dx(), b.Dy())
	half := s.lineWidth / 2
	n := 0
	for _, sub := range s.paths {
		for i := 1; i < len(sub); i++ {
			a, c := sub[i-1], sub[i]
			dx, dy := c.x-a.x, c.y-a.y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*half, dx/l*half
			s.ras.MoveTo(float32(a.x+nx), float32(a.y+ny))
			s.ras.LineTo(float32(c.x+nx), float32(c.y+ny))
			s.ras.LineTo(float32(c.x-nx), float32(c.y-ny))
			s.ras.LineTo(float32(a.x-nx), float32(a.y-ny))
			s.ras.ClosePath()
			n++
		}
	}
	if n > 0 {
		s.ras.Draw(s.img, b, image.NewUniform(s.stroke), image.Point{})
	}
}

// SetFillStyle ignores colours it cannot parse, as a canvas context does.
func (s *Surface) SetFillStyle(c string) {
	if col, ok := parseColor(c); ok {
		s.fill = col
	}
}

func (s *Surface) SetStrokeStyle(c string) {
	if col, ok := parseColor(c); ok {
		s.stroke = col
	}
}

func (s *Surface) SetLineWidth(w float64) {
	if w > 0 {
		s.lineWidth = w
	}
}

// parseColor accepts #rgb and #rrggbb.
func parseColor(c string) (color.Color, bool) {
	col, err := colorful.Hex(c)
	if err != nil {
		return nil, false
	}
	return col.Clamped(), true
}
