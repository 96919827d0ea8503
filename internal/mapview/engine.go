package mapview

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"

	"polymap/internal/geom"
)

// State is the gesture state of the engine.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragSession is the transient state of a pan gesture.
type DragSession struct {
	Active bool
	LastX  float64
	LastY  float64
	// Pending is the outstanding coalesced redraw, if any.
	Pending FrameHandle
}

// Options configures an Engine.
type Options struct {
	Style     StyleConfig
	Scheduler Scheduler
	Logger    *slog.Logger
	// StyleFunc styles redraws triggered by gestures. Nil uses Style defaults.
	StyleFunc StyleFunc
	// FallbackOnDegenerate seeds the transform from Style.Scale/OffsetX/OffsetY
	// instead of failing Initialize when the dataset cannot be fitted.
	FallbackOnDegenerate bool
}

// Engine draws a polygon dataset onto a canvas and owns the pan/zoom state.
// It is not safe for concurrent use; all calls belong on the host's event loop.
type Engine struct {
	dataset geom.Dataset
	canvas  Canvas
	opts    Options
	style   StyleConfig
	log     *slog.Logger

	surface Surface
	bounds  geom.Bounds
	view    ViewTransform
	drag    DragSession
}

// New returns an engine for dataset on canvas. canvas may be nil, in which case
// Initialize reports ErrSurfaceUnavailable.
func New(dataset geom.Dataset, canvas Canvas, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	style := opts.Style.WithDefaults()
	return &Engine{
		dataset: dataset,
		canvas:  canvas,
		opts:    opts,
		style:   style,
		log:     opts.Logger.With("component", "mapview"),
		bounds:  geom.EmptyBounds(),
		view:    style.seed(),
	}
}

// Initialize acquires the 2D context, fits the dataset, draws it and binds input.
// On error nothing is bound and nothing is drawn, and an engine initialized
// earlier is torn down as by Cleanup. Calling it again refits and
// rebinds without duplicating listeners.
func (e *Engine) Initialize() error {
	if e.canvas == nil {
		e.log.Error("initialize", "err", ErrSurfaceUnavailable)
		return ErrSurfaceUnavailable
	}
	s, err := e.canvas.Context2D()
	if err != nil || s == nil {
		if err == nil {
			err = ErrContextUnavailable
		} else {
			err = fmt.Errorf("%w: %w", ErrContextUnavailable, err)
		}
		e.log.Error("initialize", "err", err)
		e.Cleanup()
		return err
	}

	w, h := e.canvas.Size()
	bounds := geom.ComputeBounds(e.dataset)
	view, err := PlanTransform(bounds, w, h, e.style)
	if err != nil {
		if !errors.Is(err, ErrDegenerateBounds) || !e.opts.FallbackOnDegenerate {
			e.log.Error("initialize", "err", err)
			e.Cleanup()
			return err
		}
		e.log.Warn("initialize: using configured transform", "err", err)
		view = e.style.seed()
	}

	e.surface = s
	e.bounds = bounds
	e.view = view
	e.log.Info("initialize",
		"features", e.dataset.Len(), "width", w, "height", h,
		"scale", view.Scale, "offset_x", view.OffsetX, "offset_y", view.OffsetY)

	e.Redraw(e.opts.StyleFunc)
	e.canvas.SetCursor(CursorGrab)
	e.canvas.RemoveListener(e)
	e.canvas.AddListener(e)
	return nil
}

// Cleanup cancels any pending redraw, unbinds input and releases the surface. It
// is safe to call more than once and without a prior Initialize.
func (e *Engine) Cleanup() {
	if e.canvas == nil {
		return
	}
	if e.drag.Pending != 0 {
		if e.opts.Scheduler != nil {
			e.opts.Scheduler.CancelFrame(e.drag.Pending)
		}
		e.drag.Pending = 0
	}
	e.canvas.RemoveListener(e)
	e.drag.Active = false
	e.surface = nil
	e.canvas.SetCursor(CursorDefault)
}

// Redraw clears the surface and draws every feature. fn styles each feature's
// path; when nil the StyleConfig fill, stroke and line width apply.
func (e *Engine) Redraw(fn StyleFunc) {
	if e.surface == nil {
		return
	}
	s := e.surface
	w, h := e.canvas.Size()
	s.ClearRect(0, 0, w, h)
	for _, f := range e.dataset.Features {
		s.BeginPath()
		for _, ring := range f.OutlineRings() {
			for i, p := range ring {
				x, y := e.view.Project(p[0], p[1], h)
				if i == 0 {
					s.MoveTo(x, y)
				} else {
					s.LineTo(x, y)
				}
			}
		}
		if fn != nil {
			fn(s, f.Name)
		} else {
			s.SetFillStyle(e.style.DefaultFill)
			s.SetStrokeStyle(e.style.StrokeColor)
			s.SetLineWidth(e.style.StrokeWidth)
		}
		s.Fill()
		s.Stroke()
	}
	e.log.Debug("redraw", "features", e.dataset.Len(), "scale", e.view.Scale)
}

// Project maps a geographic coordinate to surface coordinates under the current
// transform.
func (e *Engine) Project(lng, lat float64) (x, y float64) {
	return e.view.Project(lng, lat, e.height())
}

// Unproject maps a surface point back to geographic coordinates.
func (e *Engine) Unproject(x, y float64) (lng, lat float64) {
	return e.view.Unproject(x, y, e.height())
}

// FeatureAt returns the topmost feature under surface point (x, y).
func (e *Engine) FeatureAt(x, y float64) (geom.Feature, bool) {
	if e.surface == nil {
		return geom.Feature{}, false
	}
	lng, lat := e.Unproject(x, y)
	p := orb.Point{lng, lat}
	if !e.bounds.Contains(p) {
		return geom.Feature{}, false
	}
	i := e.dataset.FeatureAt(p)
	if i < 0 {
		return geom.Feature{}, false
	}
	return e.dataset.Features[i], true
}

// PanBy moves the view by a surface-space delta and redraws immediately.
func (e *Engine) PanBy(dx, dy float64) {
	if e.surface == nil {
		return
	}
	e.view = e.view.Pan(dx, dy)
	e.Redraw(e.opts.StyleFunc)
}

// ZoomAt applies one wheel step anchored at surface point (x, y).
func (e *Engine) ZoomAt(x, y, deltaY float64) {
	if e.surface == nil {
		return
	}
	next, ok := e.view.ZoomAt(x, y, deltaY, e.height())
	if !ok {
		return
	}
	e.view = next
	e.log.Debug("zoom", "scale", next.Scale, "x", x, "y", y)
	e.Redraw(e.opts.StyleFunc)
}

// PointerDown starts a drag session.
func (e *Engine) PointerDown(ev PointerEvent) {
	if e.surface == nil {
		return
	}
	e.drag.Active = true
	e.drag.LastX, e.drag.LastY = e.local(ev.ClientX, ev.ClientY)
	e.canvas.SetCursor(CursorGrabbing)
}

// PointerMove pans while dragging and coalesces the redraw onto the next frame.
func (e *Engine) PointerMove(ev PointerEvent) {
	if e.surface == nil || !e.drag.Active {
		return
	}
	x, y := e.local(ev.ClientX, ev.ClientY)
	e.view = e.view.Pan(x-e.drag.LastX, y-e.drag.LastY)
	e.drag.LastX, e.drag.LastY = x, y
	e.scheduleRedraw()
}

// PointerUp ends the drag session. A pending frame is left to fire; it draws the
// latest transform.
func (e *Engine) PointerUp(PointerEvent) {
	if e.surface == nil {
		return
	}
	e.endDrag()
}

// PointerLeave ends the drag session like PointerUp.
func (e *Engine) PointerLeave(PointerEvent) {
	if e.surface == nil {
		return
	}
	e.endDrag()
}

// Wheel zooms around the pointer and redraws immediately.
func (e *Engine) Wheel(ev WheelEvent) {
	if e.surface == nil {
		return
	}
	x, y := e.local(ev.ClientX, ev.ClientY)
	e.ZoomAt(x, y, ev.DeltaY)
}

func (e *Engine) endDrag() {
	if !e.drag.Active {
		return
	}
	e.drag.Active = false
	e.canvas.SetCursor(CursorGrab)
}

// scheduleRedraw keeps at most one frame outstanding: a newer request replaces
// the pending one.
func (e *Engine) scheduleRedraw() {
	sched := e.opts.Scheduler
	if sched == nil {
		e.Redraw(e.opts.StyleFunc)
		return
	}
	if e.drag.Pending != 0 {
		sched.CancelFrame(e.drag.Pending)
	}
	var h FrameHandle
	h = sched.RequestFrame(func() {
		if e.drag.Pending == h {
			e.drag.Pending = 0
		}
		e.Redraw(e.opts.StyleFunc)
	})
	e.drag.Pending = h
}

func (e *Engine) local(clientX, clientY float64) (float64, float64) {
	left, top := e.canvas.Origin()
	return clientX - left, clientY - top
}

func (e *Engine) height() float64 {
	if e.canvas == nil {
		return 0
	}
	_, h := e.canvas.Size()
	return h
}

// State reports whether a drag is in progress.
func (e *Engine) State() State {
	if e.drag.Active {
		return Dragging
	}
	return Idle
}

func (e *Engine) Transform() ViewTransform { return e.view }
func (e *Engine) Bounds() geom.Bounds      { return e.bounds }
func (e *Engine) Drag() DragSession        { return e.drag }
func (e *Engine) Dataset() geom.Dataset    { return e.dataset }
func (e *Engine) Style() StyleConfig       { return e.style }

// Ready reports whether Initialize acquired a surface.
func (e *Engine) Ready() bool { return e.surface != nil }
