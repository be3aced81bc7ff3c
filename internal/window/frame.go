package window

import (
	"github.com/Gaurav-Gosain/journalos/internal/geometry"
)

// Button identifies a header control.
type Button int

const (
	// ButtonNone means the point is not on a header control.
	ButtonNone Button = iota
	// ButtonMinimize hides the window in the taskbar.
	ButtonMinimize
	// ButtonMaximize toggles maximize/restore.
	ButtonMaximize
	// ButtonClose requests a (gated) close.
	ButtonClose
)

// Corner identifies which corner is being used for window resizing.
type Corner int

const (
	// TopLeft represents the top-left corner for resizing.
	TopLeft Corner = iota
	// TopRight represents the top-right corner for resizing.
	TopRight
	// BottomLeft represents the bottom-left corner for resizing.
	BottomLeft
	// BottomRight represents the bottom-right corner for resizing.
	BottomRight
)

// Header layout, in cells from the right edge of the window:
// "[_][#][x] " with one trailing pad cell.
const (
	ButtonWidth   = 3
	ButtonsPad    = 1
	ButtonsWidth  = 3*ButtonWidth + ButtonsPad
	HeaderRows    = 1
	BorderColumns = 2
)

type dragSession struct {
	start  geometry.Point
	origin geometry.Geometry
}

type resizeSession struct {
	start  geometry.Point
	origin geometry.Geometry
	corner Corner
}

// Frame owns the geometry of one visible window. It is the single source of
// truth for the window's box: drag and resize sessions only remember where they
// started, never a second copy of the current position.
type Frame struct {
	Geometry  geometry.Geometry
	Maximized bool
	// Snapshot is the box saved right before the last maximize.
	Snapshot *geometry.Geometry
	// Minimized mirrors the registry; a minimized frame ignores pointer input.
	Minimized bool

	engine   geometry.Engine
	viewport geometry.Size
	drag     *dragSession
	resize   *resizeSession
}

// NewFrame creates the geometry for a freshly opened window: the engine's
// fallback box, or the whole viewport when the window opens maximized.
func NewFrame(engine geometry.Engine, viewport geometry.Size, initialMaximized bool) *Frame {
	f := &Frame{
		engine:   engine,
		viewport: viewport,
		Geometry: geometry.Normalize(engine.Fallback),
	}
	if initialMaximized {
		f.Geometry = geometry.Normalize(geometry.Geometry{Width: viewport.Width, Height: viewport.Height})
		f.Maximized = true
	}
	return f
}

// Viewport returns the last viewport the frame was told about.
func (f *Frame) Viewport() geometry.Size {
	return f.viewport
}

// Maximize fills the viewport and saves the current box for Restore. Any
// drag or resize in progress ends.
func (f *Frame) Maximize(viewport geometry.Size) {
	if f.Minimized || f.Maximized {
		return
	}
	f.endInteraction()
	f.viewport = viewport
	maximized, snapshot := f.engine.Maximize(f.Geometry, viewport)
	f.Snapshot = &snapshot
	f.Geometry = maximized
	f.Maximized = true
}

// Restore returns to the saved box, or the fallback when there is none.
// The snapshot is kept for later maximize/restore cycles.
func (f *Frame) Restore() {
	if !f.Maximized {
		return
	}
	f.endInteraction()
	f.Geometry = f.engine.Restore(f.Snapshot)
	f.Maximized = false
}

// ToggleMaximize maximizes a normal window and restores a maximized one.
func (f *Frame) ToggleMaximize(viewport geometry.Size) {
	if f.Minimized {
		return
	}
	if f.Maximized {
		f.Restore()
		return
	}
	f.Maximize(viewport)
}

// restoreSize is the size a maximized window returns to.
func (f *Frame) restoreSize() geometry.Size {
	if f.Snapshot != nil {
		return f.Snapshot.Size()
	}
	return f.engine.Fallback.Size()
}

// BeginDrag starts moving the window from cursor. A maximized window is torn
// off first, anchored under the cursor, in the same step.
func (f *Frame) BeginDrag(cursor geometry.Point) bool {
	if f.Minimized {
		return false
	}
	if f.Maximized {
		size := f.restoreSize()
		f.Geometry = f.engine.DragStartFromMaximized(cursor, f.Geometry.Width, size.Width, size.Height)
		f.Maximized = false
	}
	f.resize = nil
	f.drag = &dragSession{start: cursor, origin: f.Geometry}
	return true
}

// Dragging reports whether a drag session is active.
func (f *Frame) Dragging() bool {
	return f.drag != nil
}

// DragTo moves the window so that it follows the cursor.
func (f *Frame) DragTo(cursor geometry.Point) {
	if f.drag == nil {
		return
	}
	delta := geometry.Point{X: cursor.X - f.drag.start.X, Y: cursor.Y - f.drag.start.Y}
	next := f.engine.DragStop(f.drag.origin, delta, f.Minimized)

	// Keep the header reachable.
	if f.viewport.Height > 0 {
		next.Y = min(next.Y, f.viewport.Height-1)
	}
	if f.viewport.Width > 0 {
		next.X = min(next.X, f.viewport.Width-1)
	}
	f.Geometry = geometry.Normalize(next)
}

func (f *Frame) endInteraction() {
	f.drag = nil
	f.resize = nil
}

// EndDrag finishes the drag session.
func (f *Frame) EndDrag() {
	f.drag = nil
}

// BeginResize starts resizing from the given corner.
func (f *Frame) BeginResize(cursor geometry.Point, corner Corner) bool {
	if f.Minimized || f.Maximized {
		return false
	}
	f.drag = nil
	f.resize = &resizeSession{start: cursor, origin: f.Geometry, corner: corner}
	return true
}

// Resizing reports whether a resize session is active.
func (f *Frame) Resizing() bool {
	return f.resize != nil
}

// ResizeTo recomputes the box for the current cursor position.
func (f *Frame) ResizeTo(cursor geometry.Point) {
	if f.resize == nil {
		return
	}
	pre := f.resize.origin
	dx := cursor.X - f.resize.start.X
	dy := cursor.Y - f.resize.start.Y

	x, y, width, height := pre.X, pre.Y, pre.Width, pre.Height
	switch f.resize.corner {
	case TopLeft:
		x, y = pre.X+dx, pre.Y+dy
		width, height = pre.Width-dx, pre.Height-dy
	case TopRight:
		y = pre.Y + dy
		width, height = pre.Width+dx, pre.Height-dy
	case BottomLeft:
		x = pre.X + dx
		width, height = pre.Width-dx, pre.Height+dy
	case BottomRight:
		width, height = pre.Width+dx, pre.Height+dy
	}

	minWidth := max(f.engine.MinWidth, 1)
	minHeight := max(f.engine.MinHeight, 1)
	if width < minWidth {
		width = minWidth
		if f.resize.corner == TopLeft || f.resize.corner == BottomLeft {
			x = pre.X + pre.Width - minWidth
		}
	}
	if height < minHeight {
		height = minHeight
		if f.resize.corner == TopLeft || f.resize.corner == TopRight {
			y = pre.Y + pre.Height - minHeight
		}
	}

	f.Geometry = f.engine.ResizeStop(
		f.Geometry,
		geometry.Size{Width: width, Height: height},
		geometry.Point{X: x, Y: y},
		f.Maximized,
		f.Minimized,
	)
}

// EndResize finishes the resize session.
func (f *Frame) EndResize() {
	f.resize = nil
}

// ViewportResized keeps a maximized window matched to the new viewport.
func (f *Frame) ViewportResized(viewport geometry.Size) {
	f.viewport = viewport
	f.Geometry = f.engine.OnViewportResize(f.Geometry, viewport, f.Maximized)
}

// Contains reports whether p hits the window. Minimized windows are never hit.
func (f *Frame) Contains(p geometry.Point) bool {
	return !f.Minimized && f.Geometry.Contains(p)
}

// OnHeader reports whether p is on the window's header row.
func (f *Frame) OnHeader(p geometry.Point) bool {
	return f.Contains(p) && p.Y < f.Geometry.Y+HeaderRows
}

// HeaderButtonAt returns the header control under p.
func (f *Frame) HeaderButtonAt(p geometry.Point) Button {
	if !f.OnHeader(p) {
		return ButtonNone
	}
	right := f.Geometry.X + f.Geometry.Width - ButtonsPad
	switch {
	case p.X >= right-ButtonWidth && p.X < right:
		return ButtonClose
	case p.X >= right-2*ButtonWidth && p.X < right-ButtonWidth:
		return ButtonMaximize
	case p.X >= right-3*ButtonWidth && p.X < right-2*ButtonWidth:
		return ButtonMinimize
	}
	return ButtonNone
}

// ResizeCornerAt returns the bottom corner handle under p, if any.
func (f *Frame) ResizeCornerAt(p geometry.Point) (Corner, bool) {
	if f.Maximized || !f.Contains(p) {
		return 0, false
	}
	bottom := f.Geometry.Y + f.Geometry.Height - 1
	if p.Y != bottom || f.Geometry.Height <= HeaderRows {
		return 0, false
	}
	switch p.X {
	case f.Geometry.X:
		return BottomLeft, true
	case f.Geometry.X + f.Geometry.Width - 1:
		return BottomRight, true
	}
	return 0, false
}

// QuadrantCorner picks the corner nearest to p, for free resizing anywhere
// inside the window.
func (f *Frame) QuadrantCorner(p geometry.Point) Corner {
	midX := f.Geometry.X + f.Geometry.Width/2
	midY := f.Geometry.Y + f.Geometry.Height/2
	switch {
	case p.X < midX && p.Y < midY:
		return TopLeft
	case p.X < midX:
		return BottomLeft
	case p.Y < midY:
		return TopRight
	default:
		return BottomRight
	}
}

// ContentSize is the area left for the window body inside the header and border.
func (f *Frame) ContentSize() geometry.Size {
	return geometry.Size{
		Width:  max(f.Geometry.Width-BorderColumns, 0),
		Height: max(f.Geometry.Height-HeaderRows-1, 0),
	}
}
