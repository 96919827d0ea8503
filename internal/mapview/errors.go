package mapview

import "errors"

var (
	ErrSurfaceUnavailable = errors.New("drawable surface not found")
	ErrContextUnavailable = errors.New("failed to get 2D context")
	ErrDegenerateBounds   = errors.New("degenerate bounds")
	ErrInvalidSurfaceSize = errors.New("surface has no drawable area")
)
