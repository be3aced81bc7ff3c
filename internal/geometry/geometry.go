// Package geometry computes window placement for the journalos desktop.
//
// Every function here is pure: it takes the current box, the viewport and the
// pointer input and returns the next box. The caller owns and stores the result.
package geometry

import "math"

// Geometry is a window's on-screen box.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Point is a cursor position or a drag delta.
type Point struct {
	X, Y int
}

// Size is the dimension of the surface windows live on.
type Size struct {
	Width, Height int
}

// Documented defaults, in pixels.
const (
	DefaultX            = 100
	DefaultY            = 50
	DefaultWidth        = 500
	DefaultHeight       = 600
	DefaultHeaderHeight = 60
)

// Engine holds the constants the geometry operations depend on.
type Engine struct {
	// Fallback is used when restoring a window that has no snapshot.
	Fallback Geometry
	// HeaderHeight anchors the cursor on the header when a maximized
	// window is torn off by a drag.
	HeaderHeight int
	MinWidth     int
	MinHeight    int
}

// DefaultEngine returns an engine configured with the documented pixel defaults.
func DefaultEngine() Engine {
	return Engine{
		Fallback: Geometry{
			X:      DefaultX,
			Y:      DefaultY,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		HeaderHeight: DefaultHeaderHeight,
		MinWidth:     1,
		MinHeight:    1,
	}
}

// Size returns the width and height of g.
func (g Geometry) Size() Size {
	return Size{Width: g.Width, Height: g.Height}
}

// Contains reports whether p lies inside g.
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.X && p.X < g.X+g.Width &&
		p.Y >= g.Y && p.Y < g.Y+g.Height
}

// Normalize clamps position to the surface origin and size to at least one unit.
func Normalize(g Geometry) Geometry {
	g.X = max(g.X, 0)
	g.Y = max(g.Y, 0)
	g.Width = max(g.Width, 1)
	g.Height = max(g.Height, 1)
	return g
}

func (e Engine) clampSize(width, height int) (int, int) {
	return max(width, e.MinWidth, 1), max(height, e.MinHeight, 1)
}

// Maximize returns the full-viewport box and the snapshot to restore to later.
func (e Engine) Maximize(current Geometry, viewport Size) (maximized, snapshot Geometry) {
	return Normalize(Geometry{Width: viewport.Width, Height: viewport.Height}), current
}

// Restore returns the snapshot if there is one, otherwise the fallback box.
func (e Engine) Restore(snapshot *Geometry) Geometry {
	if snapshot != nil {
		return Normalize(*snapshot)
	}
	return Normalize(e.Fallback)
}

// DragStartFromMaximized restores a maximized window at the start of a header
// drag so that the cursor keeps the same relative horizontal position inside the
// restored box that it had inside the maximized one.
func (e Engine) DragStartFromMaximized(cursor Point, maximizedWidth, restoreWidth, restoreHeight int) Geometry {
	percentX := 0.0
	if maximizedWidth > 0 {
		percentX = float64(cursor.X) / float64(maximizedWidth)
	}
	targetX := int(math.Round(float64(cursor.X) - float64(restoreWidth)*percentX))
	targetY := cursor.Y - e.HeaderHeight

	width, height := e.clampSize(restoreWidth, restoreHeight)
	return Normalize(Geometry{
		X:      max(0, targetX),
		Y:      max(0, targetY),
		Width:  width,
		Height: height,
	})
}

// DragStop moves current by delta. Minimized windows do not move.
func (e Engine) DragStop(current Geometry, delta Point, minimized bool) Geometry {
	if minimized {
		return current
	}
	current.X += delta.X
	current.Y += delta.Y
	return Normalize(current)
}

// ResizeStop applies the final box reported by a resize handle. Resizing is
// refused while the window is maximized or minimized.
func (e Engine) ResizeStop(current Geometry, size Size, position Point, maximized, minimized bool) Geometry {
	if maximized || minimized {
		return current
	}
	width, height := e.clampSize(size.Width, size.Height)
	return Normalize(Geometry{
		X:      position.X,
		Y:      position.Y,
		Width:  width,
		Height: height,
	})
}

// OnViewportResize keeps maximized windows matched to the viewport. Normal
// windows keep their box.
func (e Engine) OnViewportResize(current Geometry, viewport Size, maximized bool) Geometry {
	if !maximized {
		return current
	}
	current.Width = viewport.Width
	current.Height = viewport.Height
	return Normalize(current)
}
