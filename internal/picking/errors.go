// Package picking turns a screen pointer into a world point on Z = 0, finds
// the named sprite under it and writes both into UI text slots.
//
// Every failure here is frame-local: callers skip the frame's output and try
// again next frame. Nothing in this package panics on bad input.
package picking

import "errors"

var (
	// ErrNoCamera means no entity carries both Camera and Transform.
	ErrNoCamera = errors.New("no camera")
	// ErrNoIntersection means the pointer ray never reaches the Z = 0 plane.
	ErrNoIntersection = errors.New("pointer ray does not meet ground plane")
	// ErrUnresolvedSprite means a sprite's sheet or index is not loaded yet.
	ErrUnresolvedSprite = errors.New("sprite not resolved")
)
