package mapview

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// recordingSurface logs every drawing call. count matches an op by its first word.
type recordingSurface struct {
	ops []string
}

func (s *recordingSurface) ClearRect(x, y, w, h float64) {
	s.ops = append(s.ops, fmt.Sprintf("clear %g %g %g %g", x, y, w, h))
}
func (s *recordingSurface) BeginPath()          { s.ops = append(s.ops, "begin") }
func (s *recordingSurface) MoveTo(x, y float64) { s.ops = append(s.ops, fmt.Sprintf("move %g %g", x, y)) }
func (s *recordingSurface) LineTo(x, y float64) { s.ops = append(s.ops, fmt.Sprintf("line %g %g", x, y)) }
func (s *recordingSurface) Fill()               { s.ops = append(s.ops, "fill") }
func (s *recordingSurface) Stroke()             { s.ops = append(s.ops, "stroke") }
func (s *recordingSurface) SetFillStyle(c string) {
	s.ops = append(s.ops, "fillStyle "+c)
}
func (s *recordingSurface) SetStrokeStyle(c string) {
	s.ops = append(s.ops, "strokeStyle "+c)
}
func (s *recordingSurface) SetLineWidth(w float64) {
	s.ops = append(s.ops, fmt.Sprintf("lineWidth %g", w))
}

func (s *recordingSurface) count(prefix string) int {
	n := 0
	for _, op := range s.ops {
		if op == prefix || strings.HasPrefix(op, prefix+" ") {
			n++
		}
	}
	return n
}

// fakeCanvas is a canvas with a fixed size that dispatches events to its
// listeners.
type fakeCanvas struct {
	w, h      float64
	left, top float64
	surface   *recordingSurface
	ctxErr    error
	cursor    Cursor
	listeners []Listener
}

func newFakeCanvas(w, h float64) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, surface: &recordingSurface{}}
}

func (c *fakeCanvas) Context2D() (Surface, error) {
	if c.ctxErr != nil {
		return nil, c.ctxErr
	}
	return c.surface, nil
}
func (c *fakeCanvas) Size() (float64, float64)   { return c.w, c.h }
func (c *fakeCanvas) Origin() (float64, float64) { return c.left, c.top }
func (c *fakeCanvas) SetCursor(cur Cursor)       { c.cursor = cur }
func (c *fakeCanvas) AddListener(l Listener)     { c.listeners = append(c.listeners, l) }
func (c *fakeCanvas) RemoveListener(l Listener) {
	c.listeners = slices.DeleteFunc(c.listeners, func(x Listener) bool { return x == l })
}

func (c *fakeCanvas) down(x, y float64) {
	for _, l := range c.listeners {
		l.PointerDown(PointerEvent{ClientX: x, ClientY: y})
	}
}

func (c *fakeCanvas) move(x, y float64) {
	for _, l := range c.listeners {
		l.PointerMove(PointerEvent{ClientX: x, ClientY: y})
	}
}

func (c *fakeCanvas) up(x, y float64) {
	for _, l := range c.listeners {
		l.PointerUp(PointerEvent{ClientX: x, ClientY: y})
	}
}

func (c *fakeCanvas) leave(x, y float64) {
	for _, l := range c.listeners {
		l.PointerLeave(PointerEvent{ClientX: x, ClientY: y})
	}
}

func (c *fakeCanvas) wheel(x, y, dy float64) {
	for _, l := range c.listeners {
		l.Wheel(WheelEvent{ClientX: x, ClientY: y, DeltaY: dy})
	}
}

// manualScheduler holds frame callbacks until flush.
type manualScheduler struct {
	next      FrameHandle
	pending   map[FrameHandle]func()
	requested int
	cancelled int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: map[FrameHandle]func(){}}
}

func (s *manualScheduler) RequestFrame(fn func()) FrameHandle {
	s.next++
	s.requested++
	s.pending[s.next] = fn
	return s.next
}

func (s *manualScheduler) CancelFrame(h FrameHandle) {
	if _, ok := s.pending[h]; ok {
		s.cancelled++
		delete(s.pending, h)
	}
}

func (s *manualScheduler) flush() {
	for h, fn := range s.pending {
		delete(s.pending, h)
		fn()
	}
}

var errNoGPU = errors.New("no context")
