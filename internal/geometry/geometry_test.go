package geometry_test

import (
	"testing"

	"github.com/Gaurav-Gosain/journalos/internal/geometry"
)

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	engine := geometry.DefaultEngine()

	tests := []struct {
		name     string
		current  geometry.Geometry
		viewport geometry.Size
	}{
		{"default box", geometry.Geometry{X: 100, Y: 50, Width: 500, Height: 600}, geometry.Size{Width: 1920, Height: 1080}},
		{"box larger than viewport", geometry.Geometry{X: 10, Y: 10, Width: 3000, Height: 2000}, geometry.Size{Width: 800, Height: 600}},
		{"tiny box", geometry.Geometry{X: 0, Y: 0, Width: 1, Height: 1}, geometry.Size{Width: 80, Height: 24}},
		{"odd offsets", geometry.Geometry{X: 333, Y: 77, Width: 421, Height: 199}, geometry.Size{Width: 1366, Height: 768}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maximized, snapshot := engine.Maximize(tt.current, tt.viewport)

			want := geometry.Geometry{Width: tt.viewport.Width, Height: tt.viewport.Height}
			if maximized != want {
				t.Errorf("Maximize() = %+v, want %+v", maximized, want)
			}

			restored := engine.Restore(&snapshot)
			if restored != tt.current {
				t.Errorf("Restore(snapshot) = %+v, want %+v", restored, tt.current)
			}
		})
	}
}

func TestRestoreWithoutSnapshotUsesFallback(t *testing.T) {
	engine := geometry.DefaultEngine()

	got := engine.Restore(nil)
	want := geometry.Geometry{X: 100, Y: 50, Width: 500, Height: 600}
	if got != want {
		t.Errorf("Restore(nil) = %+v, want %+v", got, want)
	}
}

func TestDragStartFromMaximizedAnchorsCursor(t *testing.T) {
	engine := geometry.DefaultEngine()

	got := engine.DragStartFromMaximized(geometry.Point{X: 1200, Y: 20}, 1600, 500, 600)
	if got.X != 825 {
		t.Errorf("targetX = %d, want 825", got.X)
	}
	if got.X+int(0.75*500) != 1200 {
		t.Errorf("cursor drifted: %d + 375 != 1200", got.X)
	}
	if got.Y != 0 {
		t.Errorf("targetY = %d, want 0 (clamped)", got.Y)
	}
	if got.Width != 500 || got.Height != 600 {
		t.Errorf("size = %dx%d, want 500x600", got.Width, got.Height)
	}
}

func TestDragStartFromMaximized(t *testing.T) {
	engine := geometry.DefaultEngine()

	tests := []struct {
		name          string
		cursor        geometry.Point
		maxWidth      int
		restoreWidth  int
		restoreHeight int
		want          geometry.Geometry
	}{
		{
			name:   "left edge",
			cursor: geometry.Point{X: 0, Y: 100}, maxWidth: 1600, restoreWidth: 500, restoreHeight: 600,
			want: geometry.Geometry{X: 0, Y: 40, Width: 500, Height: 600},
		},
		{
			name:   "center",
			cursor: geometry.Point{X: 800, Y: 60}, maxWidth: 1600, restoreWidth: 400, restoreHeight: 300,
			want: geometry.Geometry{X: 600, Y: 0, Width: 400, Height: 300},
		},
		{
			name:   "right edge",
			cursor: geometry.Point{X: 1600, Y: 200}, maxWidth: 1600, restoreWidth: 500, restoreHeight: 600,
			want: geometry.Geometry{X: 1100, Y: 140, Width: 500, Height: 600},
		},
		{
			name:   "zero maximized width",
			cursor: geometry.Point{X: 50, Y: 70}, maxWidth: 0, restoreWidth: 500, restoreHeight: 600,
			want: geometry.Geometry{X: 50, Y: 10, Width: 500, Height: 600},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.DragStartFromMaximized(tt.cursor, tt.maxWidth, tt.restoreWidth, tt.restoreHeight)
			if got != tt.want {
				t.Errorf("DragStartFromMaximized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDragStop(t *testing.T) {
	engine := geometry.DefaultEngine()
	current := geometry.Geometry{X: 100, Y: 50, Width: 500, Height: 600}

	got := engine.DragStop(current, geometry.Point{X: 25, Y: -10}, false)
	want := geometry.Geometry{X: 125, Y: 40, Width: 500, Height: 600}
	if got != want {
		t.Errorf("DragStop() = %+v, want %+v", got, want)
	}

	if got := engine.DragStop(current, geometry.Point{X: -500, Y: -500}, false); got.X != 0 || got.Y != 0 {
		t.Errorf("DragStop() past origin = %+v, want clamped to 0,0", got)
	}

	if got := engine.DragStop(current, geometry.Point{X: 25, Y: 25}, true); got != current {
		t.Errorf("DragStop() on minimized window = %+v, want unchanged", got)
	}
}

func TestResizeStop(t *testing.T) {
	engine := geometry.DefaultEngine()
	current := geometry.Geometry{X: 100, Y: 50, Width: 500, Height: 600}

	tests := []struct {
		name      string
		size      geometry.Size
		pos       geometry.Point
		maximized bool
		minimized bool
		want      geometry.Geometry
	}{
		{"normal", geometry.Size{Width: 640, Height: 480}, geometry.Point{X: 90, Y: 40}, false, false, geometry.Geometry{X: 90, Y: 40, Width: 640, Height: 480}},
		{"maximized refused", geometry.Size{Width: 640, Height: 480}, geometry.Point{X: 90, Y: 40}, true, false, current},
		{"minimized refused", geometry.Size{Width: 640, Height: 480}, geometry.Point{X: 90, Y: 40}, false, true, current},
		{"non-positive size clamps", geometry.Size{Width: -5, Height: 0}, geometry.Point{X: -3, Y: 4}, false, false, geometry.Geometry{X: 0, Y: 4, Width: 1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ResizeStop(current, tt.size, tt.pos, tt.maximized, tt.minimized)
			if got != tt.want {
				t.Errorf("ResizeStop() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOnViewportResize(t *testing.T) {
	engine := geometry.DefaultEngine()
	maximized := geometry.Geometry{Width: 1600, Height: 900}
	normal := geometry.Geometry{X: 100, Y: 50, Width: 500, Height: 600}
	viewport := geometry.Size{Width: 1280, Height: 720}

	if got := engine.OnViewportResize(maximized, viewport, true); got.Width != 1280 || got.Height != 720 {
		t.Errorf("maximized window = %+v, want 1280x720", got)
	}
	if got := engine.OnViewportResize(normal, viewport, false); got != normal {
		t.Errorf("normal window = %+v, want unchanged", got)
	}
	if got := engine.OnViewportResize(maximized, geometry.Size{}, true); got.Width != 1 || got.Height != 1 {
		t.Errorf("collapsed viewport = %+v, want 1x1", got)
	}
}

func TestContains(t *testing.T) {
	g := geometry.Geometry{X: 10, Y: 5, Width: 20, Height: 10}

	if !g.Contains(geometry.Point{X: 10, Y: 5}) {
		t.Error("expected top-left corner to be inside")
	}
	if g.Contains(geometry.Point{X: 30, Y: 5}) {
		t.Error("expected right edge to be outside")
	}
	if g.Contains(geometry.Point{X: 15, Y: 15}) {
		t.Error("expected bottom edge to be outside")
	}
}
