package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/mapview"
)

type eventLog struct {
	events []string
	last   mapview.PointerEvent
	wheel  mapview.WheelEvent
}

func (l *eventLog) PointerDown(ev mapview.PointerEvent) {
	l.events = append(l.events, "down")
	l.last = ev
}
func (l *eventLog) PointerMove(ev mapview.PointerEvent)  { l.events = append(l.events, "move") }
func (l *eventLog) PointerUp(ev mapview.PointerEvent)    { l.events = append(l.events, "up") }
func (l *eventLog) PointerLeave(ev mapview.PointerEvent) { l.events = append(l.events, "leave") }
func (l *eventLog) Wheel(ev mapview.WheelEvent) {
	l.events = append(l.events, "wheel")
	l.wheel = ev
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestTermCanvasGeometry(t *testing.T) {
	c := newTermCanvas()
	_, err := c.Context2D()
	assert.ErrorIs(t, err, errNoMapArea)

	assert.True(t, c.resize(10, 5, 3, 1))
	assert.False(t, c.resize(10, 5, 4, 1), "moving without resizing keeps the surface")
	w, h := c.Size()
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 20.0, h)
	left, top := c.Origin()
	assert.Equal(t, 8.0, left)
	assert.Equal(t, 4.0, top)
	s, err := c.Context2D()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestTermCanvasDispatch(t *testing.T) {
	c := newTermCanvas()
	c.resize(10, 5, 0, 1)
	l := &eventLog{}
	c.AddListener(l)

	c.dispatch(mouse(2, 2, tea.MouseActionPress, tea.MouseButtonLeft))
	c.dispatch(mouse(3, 2, tea.MouseActionMotion, tea.MouseButtonLeft))
	c.dispatch(mouse(3, 2, tea.MouseActionRelease, tea.MouseButtonLeft))
	c.dispatch(mouse(3, 2, tea.MouseActionPress, tea.MouseButtonWheelUp))
	assert.Equal(t, []string{"down", "move", "up", "wheel"}, l.events)
	assert.Equal(t, mapview.PointerEvent{ClientX: 5, ClientY: 10}, l.last)
	assert.Equal(t, -1.0, l.wheel.DeltaY)

	c.dispatch(mouse(3, 2, tea.MouseActionPress, tea.MouseButtonWheelDown))
	assert.Equal(t, 1.0, l.wheel.DeltaY)

	l.events = nil
	c.dispatch(mouse(3, 0, tea.MouseActionMotion, tea.MouseButtonNone))
	c.dispatch(mouse(3, 0, tea.MouseActionMotion, tea.MouseButtonNone))
	c.dispatch(mouse(3, 0, tea.MouseActionPress, tea.MouseButtonLeft))
	assert.Equal(t, []string{"leave"}, l.events, "outside the map only a single leave")

	c.RemoveListener(l)
	c.dispatch(mouse(3, 2, tea.MouseActionPress, tea.MouseButtonLeft))
	assert.Equal(t, []string{"leave"}, l.events)
}

func TestFrameScheduler(t *testing.T) {
	s := newFrameScheduler(time.Millisecond)
	ran := 0
	h1 := s.RequestFrame(func() { ran++ })
	h2 := s.RequestFrame(func() { ran += 10 })
	assert.NotEqual(t, h1, h2)
	assert.NotZero(t, h1)
	assert.Zero(t, ran, "frames never run synchronously")

	s.CancelFrame(h1)
	assert.False(t, s.fire(h1))
	assert.True(t, s.fire(h2))
	assert.False(t, s.fire(h2), "a frame fires once")
	assert.Equal(t, 10, ran)

	assert.NotNil(t, s.drain())
	assert.Nil(t, s.drain())
}

func TestFrameSchedulerDefaultInterval(t *testing.T) {
	assert.Equal(t, 16*time.Millisecond, newFrameScheduler(0).interval)
}
