package window_test

import (
	"errors"
	"testing"

	"github.com/Gaurav-Gosain/journalos/internal/geometry"
	"github.com/Gaurav-Gosain/journalos/internal/window"
)

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from    window.State
		event   window.Event
		want    window.State
		wantErr bool
	}{
		{window.StateNormal, window.EventMinimize, window.StateMinimized, false},
		{window.StateMinimized, window.EventRestore, window.StateNormal, false},
		{window.StateMinimized, window.EventMinimize, window.StateMinimized, false},
		{window.StateNormal, window.EventRestore, window.StateNormal, false},
		{window.StateNormal, window.EventClose, window.StateClosed, false},
		{window.StateMinimized, window.EventClose, window.StateClosed, false},
		{window.StateClosed, window.EventRestore, window.StateClosed, true},
		{window.StateNormal, window.Event(42), window.StateNormal, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.event.String(), func(t *testing.T) {
			got, err := tt.from.Next(tt.event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Next() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, window.ErrInvalidTransition) {
				t.Errorf("Next() error = %v, want ErrInvalidTransition", err)
			}
			if got != tt.want {
				t.Errorf("Next() = %s, want %s", got, tt.want)
			}
		})
	}
}

func pixelFrame(initialMaximized bool) *window.Frame {
	return window.NewFrame(geometry.DefaultEngine(), geometry.Size{Width: 1600, Height: 900}, initialMaximized)
}

func TestNewFrame(t *testing.T) {
	f := pixelFrame(false)
	want := geometry.Geometry{X: 100, Y: 50, Width: 500, Height: 600}
	if f.Geometry != want || f.Maximized {
		t.Errorf("NewFrame() = %+v maximized=%v, want %+v not maximized", f.Geometry, f.Maximized, want)
	}

	f = pixelFrame(true)
	if f.Geometry != (geometry.Geometry{Width: 1600, Height: 900}) || !f.Maximized {
		t.Errorf("NewFrame(maximized) = %+v maximized=%v", f.Geometry, f.Maximized)
	}
	if f.Snapshot != nil {
		t.Error("window opened maximized should have no snapshot")
	}
}

func TestFrameRestoreWithoutSnapshotFallsBack(t *testing.T) {
	f := pixelFrame(true)
	f.ToggleMaximize(geometry.Size{Width: 1600, Height: 900})

	want := geometry.Geometry{X: 100, Y: 50, Width: 500, Height: 600}
	if f.Geometry != want || f.Maximized {
		t.Errorf("restore = %+v maximized=%v, want fallback %+v", f.Geometry, f.Maximized, want)
	}
}

func TestFrameMaximizeRestoreKeepsSnapshot(t *testing.T) {
	f := pixelFrame(false)
	f.Geometry = geometry.Geometry{X: 40, Y: 30, Width: 320, Height: 240}
	viewport := geometry.Size{Width: 1600, Height: 900}

	for range 3 {
		f.ToggleMaximize(viewport)
		if !f.Maximized || f.Snapshot == nil {
			t.Fatal("expected maximized window with snapshot")
		}
		f.ToggleMaximize(viewport)
		if f.Geometry != (geometry.Geometry{X: 40, Y: 30, Width: 320, Height: 240}) {
			t.Fatalf("restore drifted: %+v", f.Geometry)
		}
	}
	if f.Snapshot == nil {
		t.Error("snapshot should be retained after restore")
	}
}

func TestFrameMinimizedIgnoresGeometryActions(t *testing.T) {
	f := pixelFrame(false)
	f.Minimized = true
	before := f.Geometry

	f.ToggleMaximize(geometry.Size{Width: 1600, Height: 900})
	if f.BeginDrag(geometry.Point{X: 120, Y: 50}) {
		t.Error("BeginDrag on minimized window should be refused")
	}
	if f.BeginResize(geometry.Point{X: 599, Y: 649}, window.BottomRight) {
		t.Error("BeginResize on minimized window should be refused")
	}
	if f.Geometry != before || f.Maximized {
		t.Errorf("minimized frame changed: %+v maximized=%v", f.Geometry, f.Maximized)
	}
	if f.Contains(geometry.Point{X: 120, Y: 60}) {
		t.Error("minimized frame should not be hit")
	}
}

func TestFrameDragFromMaximized(t *testing.T) {
	f := pixelFrame(false)
	viewport := geometry.Size{Width: 1600, Height: 900}
	f.ToggleMaximize(viewport)

	if !f.BeginDrag(geometry.Point{X: 1200, Y: 20}) {
		t.Fatal("BeginDrag refused")
	}
	if f.Maximized {
		t.Error("window should be restored as soon as the drag starts")
	}
	if f.Geometry.X != 825 || f.Geometry.Width != 500 || f.Geometry.Height != 600 {
		t.Errorf("torn-off geometry = %+v, want x=825 500x600", f.Geometry)
	}

	f.DragTo(geometry.Point{X: 1210, Y: 120})
	if f.Geometry.X != 835 || f.Geometry.Y != 100 {
		t.Errorf("after drag = %+v, want x=835 y=100", f.Geometry)
	}
	f.EndDrag()
	if f.Dragging() {
		t.Error("drag session should end")
	}
}

func TestFrameDragKeepsHeaderReachable(t *testing.T) {
	f := window.NewFrame(geometry.DefaultEngine(), geometry.Size{Width: 800, Height: 600}, false)
	f.BeginDrag(geometry.Point{X: 150, Y: 50})
	f.DragTo(geometry.Point{X: 5000, Y: 5000})

	if f.Geometry.X != 799 || f.Geometry.Y != 599 {
		t.Errorf("geometry = %+v, want header clamped to 799,599", f.Geometry)
	}
}

func TestFrameResize(t *testing.T) {
	engine := geometry.Engine{
		Fallback:     geometry.Geometry{X: 10, Y: 5, Width: 40, Height: 12},
		HeaderHeight: 1,
		MinWidth:     20,
		MinHeight:    6,
	}
	tests := []struct {
		name   string
		corner window.Corner
		cursor geometry.Point
		want   geometry.Geometry
	}{
		{"grow bottom-right", window.BottomRight, geometry.Point{X: 59, Y: 20}, geometry.Geometry{X: 10, Y: 5, Width: 50, Height: 16}},
		{"grow bottom-left", window.BottomLeft, geometry.Point{X: 5, Y: 16}, geometry.Geometry{X: 5, Y: 5, Width: 45, Height: 12}},
		{"shrink past minimum from left", window.BottomLeft, geometry.Point{X: 45, Y: 16}, geometry.Geometry{X: 30, Y: 5, Width: 20, Height: 12}},
		{"shrink past minimum from top", window.TopRight, geometry.Point{X: 49, Y: 30}, geometry.Geometry{X: 10, Y: 11, Width: 40, Height: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := window.NewFrame(engine, geometry.Size{Width: 120, Height: 40}, false)
			start := geometry.Point{X: 49, Y: 16}
			if tt.corner == window.BottomLeft {
				start = geometry.Point{X: 10, Y: 16}
			}
			if !f.BeginResize(start, tt.corner) {
				t.Fatal("BeginResize refused")
			}
			f.ResizeTo(tt.cursor)
			f.EndResize()
			if f.Geometry != tt.want {
				t.Errorf("geometry = %+v, want %+v", f.Geometry, tt.want)
			}
		})
	}
}

func TestFrameResizeRefusedWhileMaximized(t *testing.T) {
	f := pixelFrame(true)
	if f.BeginResize(geometry.Point{X: 1599, Y: 899}, window.BottomRight) {
		t.Error("BeginResize on maximized window should be refused")
	}
	if _, ok := f.ResizeCornerAt(geometry.Point{X: 1599, Y: 899}); ok {
		t.Error("maximized window should expose no resize handle")
	}
}

func TestFrameMaximizeEndsInteraction(t *testing.T) {
	viewport := geometry.Size{Width: 1600, Height: 900}
	tests := []struct {
		name  string
		begin func(f *window.Frame)
		move  func(f *window.Frame, p geometry.Point)
	}{
		{"drag", func(f *window.Frame) { f.BeginDrag(geometry.Point{X: 200, Y: 200}) }, (*window.Frame).DragTo},
		{"resize", func(f *window.Frame) {
			g := f.Geometry
			f.BeginResize(geometry.Point{X: g.X + g.Width - 1, Y: g.Y + g.Height - 1}, window.BottomRight)
		}, (*window.Frame).ResizeTo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := pixelFrame(false)
			tt.begin(f)
			if !f.Dragging() && !f.Resizing() {
				t.Fatal("interaction did not start")
			}

			f.ToggleMaximize(viewport)
			if f.Dragging() || f.Resizing() {
				t.Fatal("maximize left the interaction running")
			}
			maxed := f.Geometry
			tt.move(f, geometry.Point{X: 300, Y: 300})
			if !f.Maximized || f.Geometry != maxed {
				t.Errorf("motion after maximize: %+v maximized=%v", f.Geometry, f.Maximized)
			}
		})
	}
}

func TestFrameViewportResized(t *testing.T) {
	f := pixelFrame(true)
	f.ViewportResized(geometry.Size{Width: 1024, Height: 768})
	if f.Geometry.Width != 1024 || f.Geometry.Height != 768 {
		t.Errorf("maximized frame = %+v, want 1024x768", f.Geometry)
	}

	g := pixelFrame(false)
	before := g.Geometry
	g.ViewportResized(geometry.Size{Width: 1024, Height: 768})
	if g.Geometry != before {
		t.Errorf("normal frame = %+v, want unchanged", g.Geometry)
	}
}

func TestHeaderButtonAt(t *testing.T) {
	f := window.NewFrame(geometry.Engine{
		Fallback: geometry.Geometry{X: 10, Y: 5, Width: 40, Height: 12},
	}, geometry.Size{Width: 120, Height: 40}, false)

	// Window spans x 10..49; buttons end one cell before the right edge.
	tests := []struct {
		x, y int
		want window.Button
	}{
		{49, 5, window.ButtonNone},
		{48, 5, window.ButtonClose},
		{46, 5, window.ButtonClose},
		{45, 5, window.ButtonMaximize},
		{43, 5, window.ButtonMaximize},
		{42, 5, window.ButtonMinimize},
		{40, 5, window.ButtonMinimize},
		{39, 5, window.ButtonNone},
		{46, 6, window.ButtonNone},
	}
	for _, tt := range tests {
		if got := f.HeaderButtonAt(geometry.Point{X: tt.x, Y: tt.y}); got != tt.want {
			t.Errorf("HeaderButtonAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestContentSize(t *testing.T) {
	f := window.NewFrame(geometry.Engine{
		Fallback: geometry.Geometry{Width: 40, Height: 12},
	}, geometry.Size{Width: 120, Height: 40}, false)

	if got := f.ContentSize(); got != (geometry.Size{Width: 38, Height: 10}) {
		t.Errorf("ContentSize() = %+v, want 38x10", got)
	}
}
