package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// brailleSurface is a 2D context over a braille micro-grid: each terminal cell
// holds 2x4 dots, so surface coordinates are dot coordinates. Every cell carries
// one foreground colour, the last one painted into it.
type brailleSurface struct {
	w, h  int        // in cells
	m     [][]uint8  // per-cell 8-bit mask
	color [][]string // per-cell foreground

	fillStyle   string
	strokeStyle string
	lineWidth   float64
	paths       [][][2]float64
}

func newBrailleSurface(w, h int) *brailleSurface {
	m := make([][]uint8, h)
	c := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]string, w)
	}
	return &brailleSurface{w: w, h: h, m: m, color: c, lineWidth: 1}
}

// ClearRect clears every cell the rectangle touches.
func (b *brailleSurface) ClearRect(x, y, w, h float64) {
	x0, y0 := int(x)/2, int(y)/4
	x1, y1 := int(x+w+1)/2, int(y+h+3)/4
	for cy := max(0, y0); cy < min(b.h, y1); cy++ {
		for cx := max(0, x0); cx < min(b.w, x1); cx++ {
			b.m[cy][cx] = 0
			b.color[cy][cx] = ""
		}
	}
}

func (b *brailleSurface) BeginPath() { b.paths = b.paths[:0] }

func (b *brailleSurface) MoveTo(x, y float64) {
	b.paths = append(b.paths, [][2]float64{{x, y}})
}

func (b *brailleSurface) LineTo(x, y float64) {
	if len(b.paths) == 0 {
		b.MoveTo(x, y)
		return
	}
	last := len(b.paths) - 1
	b.paths[last] = append(b.paths[last], [2]float64{x, y})
}

// SetFillStyle and SetStrokeStyle keep the previous colour when c is not a hex
// colour.
func (b *brailleSurface) SetFillStyle(c string) {
	if hex, ok := normalizeHex(c); ok {
		b.fillStyle = hex
	}
}

func (b *brailleSurface) SetStrokeStyle(c string) {
	if hex, ok := normalizeHex(c); ok {
		b.strokeStyle = hex
	}
}

func (b *brailleSurface) SetLineWidth(w float64) { b.lineWidth = w }

func normalizeHex(c string) (string, bool) {
	col, err := colorful.Hex(c)
	if err != nil {
		return "", false
	}
	return col.Clamped().Hex(), true
}

// Fill sets every dot whose centre is inside the path, even-odd across all
// subpaths.
func (b *brailleSurface) Fill() {
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		sy := float64(yMic) + 0.5
		var xs []float64
		for _, sub := range b.paths {
			n := len(sub)
			if n < 3 {
				continue
			}
			for i := 0; i < n; i++ {
				a := sub[i]
				c := sub[(i+1)%n]
				if a[1] == c[1] { // horizontal edge: skip
					continue
				}
				if (sy >= a[1] && sy < c[1]) || (sy >= c[1] && sy < a[1]) {
					t := (sy - a[1]) / (c[1] - a[1])
					xs = append(xs, a[0]+t*(c[0]-a[0]))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := int(max(0, xs[i]+0.5))
			end := int(min(float64(b.w*2-1), xs[i+1]-0.5))
			for xMic := start; xMic <= end; xMic++ {
				b.setPixel(xMic, yMic, b.fillStyle)
			}
		}
	}
}

// Stroke draws each subpath's segments one dot wide; wider lines do not fit the
// grid. Segments are clipped to the grid first.
func (b *brailleSurface) Stroke() {
	maxX, maxY := float64(b.w*2), float64(b.h*4)
	for _, sub := range b.paths {
		for i := 1; i < len(sub); i++ {
			a, c := sub[i-1], sub[i]
			x0, y0, x1, y1, ok := clipSegment(a[0], a[1], c[0], c[1], -1, -1, maxX, maxY)
			if !ok {
				continue
			}
			b.drawLineMicro(round(x0), round(y0), round(x1), round(y1), b.strokeStyle)
		}
	}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleSurface) setPixel(mx, my int, col string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.color[cy][cx] = col
}

// drawLineMicro draws a line on the microgrid using Bresenham.
func (b *brailleSurface) drawLineMicro(x0, y0, x1, y1 int, col string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment clips a segment to the rectangle [minX, maxX] x [minY, maxY]
// (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (ax, ay, bx, by float64, ok bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	for _, e := range [4][2]float64{{-dx, x0 - minX}, {dx, maxX - x0}, {-dy, y0 - minY}, {dy, maxY - y0}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// lines renders the grid, colouring runs of cells that share a foreground.
func (b *brailleSurface) lines() []string {
	styles := map[string]lipgloss.Style{}
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		runColor := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(string(run))
			} else {
				st, ok := styles[runColor]
				if !ok {
					st = lipgloss.NewStyle().Foreground(lipgloss.Color(runColor))
					styles[runColor] = st
				}
				sb.WriteString(st.Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			r, col := ' ', ""
			if mask != 0 {
				r, col = rune(0x2800+int(mask)), b.color[y][x]
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
