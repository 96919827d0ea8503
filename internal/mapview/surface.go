package mapview

// Surface is a 2D drawing context.
type Surface interface {
	ClearRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Fill()
	Stroke()
	SetFillStyle(color string)
	SetStrokeStyle(color string)
	SetLineWidth(w float64)
}

// Cursor is the pointer affordance shown over the canvas.
type Cursor string

const (
	CursorDefault  Cursor = "default"
	CursorGrab     Cursor = "grab"
	CursorGrabbing Cursor = "grabbing"
)

// Canvas is the host handle for a drawable area. Event positions delivered to
// listeners are in host coordinates; Origin is subtracted to make them
// surface-relative.
type Canvas interface {
	Context2D() (Surface, error)
	Size() (width, height float64)
	Origin() (left, top float64)
	SetCursor(c Cursor)
	AddListener(l Listener)
	RemoveListener(l Listener)
}

// PointerEvent carries a pointer position in host coordinates.
type PointerEvent struct {
	ClientX float64
	ClientY float64
}

// WheelEvent carries a wheel step at a pointer position. DeltaY > 0 scrolls down.
type WheelEvent struct {
	ClientX float64
	ClientY float64
	DeltaY  float64
}

// Listener receives canvas input.
type Listener interface {
	PointerDown(ev PointerEvent)
	PointerMove(ev PointerEvent)
	PointerUp(ev PointerEvent)
	PointerLeave(ev PointerEvent)
	Wheel(ev WheelEvent)
}

// FrameHandle identifies a pending frame callback. The zero handle means none.
type FrameHandle uint64

// Scheduler defers work to the host's next frame. RequestFrame must not run fn
// before returning.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

// StyleFunc styles the current path of the feature called name before it is
// filled and stroked. It is called once per feature, after all of the feature's
// rings are traced.
type StyleFunc func(s Surface, name string)
