package tui

import (
	"errors"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"polymap/internal/mapview"
)

var errNoMapArea = errors.New("map area has no cells")

// termCanvas is the map area of the terminal. Its coordinates are braille dots:
// a cell at column c, row r spans dots [2c, 2c+2) x [4r, 4r+4).
type termCanvas struct {
	cols, rows int
	left, top  int // cell origin of the map area on screen
	surface    *brailleSurface
	cursor     mapview.Cursor
	listeners  []mapview.Listener
	inside     bool
}

func newTermCanvas() *termCanvas {
	return &termCanvas{cursor: mapview.CursorDefault}
}

// resize places the canvas and reports whether its size changed.
func (c *termCanvas) resize(cols, rows, left, top int) bool {
	c.left, c.top = left, top
	if c.surface != nil && cols == c.cols && rows == c.rows {
		return false
	}
	c.cols, c.rows = cols, rows
	c.surface = nil
	if cols > 0 && rows > 0 {
		c.surface = newBrailleSurface(cols, rows)
	}
	return true
}

func (c *termCanvas) Context2D() (mapview.Surface, error) {
	if c.surface == nil {
		return nil, errNoMapArea
	}
	return c.surface, nil
}

func (c *termCanvas) Size() (float64, float64)     { return float64(c.cols * 2), float64(c.rows * 4) }
func (c *termCanvas) Origin() (float64, float64)   { return float64(c.left * 2), float64(c.top * 4) }
func (c *termCanvas) SetCursor(cur mapview.Cursor) { c.cursor = cur }

func (c *termCanvas) AddListener(l mapview.Listener) { c.listeners = append(c.listeners, l) }

func (c *termCanvas) RemoveListener(l mapview.Listener) {
	c.listeners = slices.DeleteFunc(c.listeners, func(x mapview.Listener) bool { return x == l })
}

// contains reports whether screen cell (x, y) is inside the map area.
func (c *termCanvas) contains(x, y int) bool {
	return x >= c.left && x < c.left+c.cols && y >= c.top && y < c.top+c.rows
}

// client converts a screen cell to the dot at its centre.
func client(x, y int) (float64, float64) {
	return float64(x*2 + 1), float64(y*4 + 2)
}

// dispatch turns a terminal mouse message into canvas input. Motion that leaves
// the map area is delivered once as PointerLeave.
func (c *termCanvas) dispatch(msg tea.MouseMsg) {
	cx, cy := client(msg.X, msg.Y)
	pe := mapview.PointerEvent{ClientX: cx, ClientY: cy}
	in := c.contains(msg.X, msg.Y)
	if !in {
		if c.inside {
			c.inside = false
			for _, l := range c.listeners {
				l.PointerLeave(pe)
			}
		}
		return
	}
	c.inside = true

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			for _, l := range c.listeners {
				l.PointerDown(pe)
			}
		case tea.MouseButtonWheelUp:
			c.wheel(cx, cy, -1)
		case tea.MouseButtonWheelDown:
			c.wheel(cx, cy, 1)
		}
	case tea.MouseActionMotion:
		for _, l := range c.listeners {
			l.PointerMove(pe)
		}
	case tea.MouseActionRelease:
		for _, l := range c.listeners {
			l.PointerUp(pe)
		}
	}
}

func (c *termCanvas) wheel(x, y, deltaY float64) {
	for _, l := range c.listeners {
		l.Wheel(mapview.WheelEvent{ClientX: x, ClientY: y, DeltaY: deltaY})
	}
}

// lines renders the map area.
func (c *termCanvas) lines() []string {
	if c.surface == nil {
		return nil
	}
	return c.surface.lines()
}

// frameMsg fires a scheduled frame.
type frameMsg struct{ id mapview.FrameHandle }

// frameScheduler runs frame callbacks from the bubbletea loop. Each request
// queues a tick; a cancelled tick still arrives and is ignored.
type frameScheduler struct {
	interval time.Duration
	next     mapview.FrameHandle
	pending  map[mapview.FrameHandle]func()
	queued   []tea.Cmd
}

func newFrameScheduler(interval time.Duration) *frameScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &frameScheduler{interval: interval, pending: map[mapview.FrameHandle]func(){}}
}

func (s *frameScheduler) RequestFrame(fn func()) mapview.FrameHandle {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(s.interval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	}))
	return id
}

func (s *frameScheduler) CancelFrame(h mapview.FrameHandle) { delete(s.pending, h) }

// fire runs the callback for id if it is still pending.
func (s *frameScheduler) fire(id mapview.FrameHandle) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// drain returns the ticks queued since the last call.
func (s *frameScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
