package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"polymap/internal/geom"
	"polymap/internal/mapview"
)

// Canvas is a fixed-size offscreen canvas. It accepts listeners but never
// produces input.
type Canvas struct {
	surface   *Surface
	w, h      int
	cursor    mapview.Cursor
	listeners []mapview.Listener
}

// NewCanvas returns a w x h canvas. A canvas without area has no surface, and
// Context2D reports it.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{w: w, h: h, cursor: mapview.CursorDefault}
	if w > 0 && h > 0 {
		c.surface = NewSurface(w, h)
	}
	return c
}

func (c *Canvas) Context2D() (mapview.Surface, error) {
	if c.surface == nil {
		return nil, fmt.Errorf("raster canvas %dx%d", c.w, c.h)
	}
	return c.surface, nil
}

func (c *Canvas) Size() (float64, float64)     { return float64(c.w), float64(c.h) }
func (c *Canvas) Origin() (float64, float64)   { return 0, 0 }
func (c *Canvas) SetCursor(cur mapview.Cursor) { c.cursor = cur }

func (c *Canvas) AddListener(l mapview.Listener) { c.listeners = append(c.listeners, l) }

func (c *Canvas) RemoveListener(l mapview.Listener) {
	for i, x := range c.listeners {
		if x == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Image returns the rendered frame, or nil for a canvas without area.
func (c *Canvas) Image() *image.RGBA {
	if c.surface == nil {
		return nil
	}
	return c.surface.Image()
}

// Render fits d into a w x h image and draws one frame with opts.
func Render(d geom.Dataset, w, h int, opts mapview.Options) (*image.RGBA, error) {
	c := NewCanvas(w, h)
	e := mapview.New(d, c, opts)
	if err := e.Initialize(); err != nil {
		return nil, err
	}
	e.Cleanup()
	return c.Image(), nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
