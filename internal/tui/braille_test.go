package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(b *brailleSurface, x0, y0, x1, y1 float64) {
	b.BeginPath()
	b.MoveTo(x0, y0)
	b.LineTo(x1, y0)
	b.LineTo(x1, y1)
	b.LineTo(x0, y1)
}

func TestBrailleFill(t *testing.T) {
	b := newBrailleSurface(4, 2)
	b.SetFillStyle("#f00")
	square(b, 0, 0, 8, 8)
	b.Fill()

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, uint8(0xFF), b.m[y][x], "cell %d,%d", x, y)
			assert.Equal(t, "#ff0000", b.color[y][x])
		}
	}
	lines := b.lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "⣿⣿⣿⣿")

	b.ClearRect(0, 0, 8, 8)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.Zero(t, b.m[y][x])
			assert.Empty(t, b.color[y][x])
		}
	}
}

func TestBrailleFillEvenOdd(t *testing.T) {
	b := newBrailleSurface(4, 2)
	b.SetFillStyle("#00f")
	square(b, 0, 0, 8, 8)
	b.MoveTo(2, 2)
	b.LineTo(6, 2)
	b.LineTo(6, 6)
	b.LineTo(2, 6)
	b.Fill()

	// dots (2..5, 2..5) form the hole
	assert.Equal(t, uint8(0), b.m[0][1]&0x20, "hole dot at (2,2)")
	assert.NotZero(t, b.m[0][0]&0x01, "outer dot at (0,0)")
}

func TestBrailleStroke(t *testing.T) {
	b := newBrailleSurface(4, 1)
	b.SetStrokeStyle("#00ff00")
	b.BeginPath()
	b.MoveTo(0, 0)
	b.LineTo(7, 0)
	b.Stroke()

	for x := 0; x < 4; x++ {
		assert.Equal(t, uint8(0x09), b.m[0][x], "cell %d", x)
		assert.Equal(t, "#00ff00", b.color[0][x])
	}
}

func TestBrailleStrokeClipsLongSegments(t *testing.T) {
	b := newBrailleSurface(3, 1)
	b.BeginPath()
	b.MoveTo(-1e9, 1)
	b.LineTo(1e9, 1)
	b.MoveTo(-50, -50)
	b.LineTo(-10, -10)
	b.Stroke()

	for x := 0; x < 3; x++ {
		assert.Equal(t, uint8(0x12), b.m[0][x], "cell %d", x)
	}
}

func TestBrailleIgnoresInvalidColour(t *testing.T) {
	b := newBrailleSurface(1, 1)
	b.SetFillStyle("#abcdef")
	b.SetFillStyle("not-a-colour")
	assert.Equal(t, "#abcdef", b.fillStyle)
}

func TestBrailleBlankRowsRenderSpaces(t *testing.T) {
	b := newBrailleSurface(5, 1)
	assert.Equal(t, strings.Repeat(" ", 5), b.lines()[0])
}
