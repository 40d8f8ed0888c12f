package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsArena(t *testing.T) {
	cam := New(1000, 800, 1000, 1000)

	if cam.X != 500 || cam.Y != 500 {
		t.Errorf("expected camera at (500, 500), got (%f, %f)", cam.X, cam.Y)
	}
	if !near(cam.Zoom, 0.8) {
		t.Errorf("expected fit zoom 0.8, got %f", cam.Zoom)
	}

	// Arena corners land inside the viewport
	for _, p := range [][2]float32{{0, 0}, {1000, 1000}} {
		sx, sy := cam.WorldToScreen(p[0], p[1])
		if sx < -0.01 || sx > 1000.01 || sy < -0.01 || sy > 800.01 {
			t.Errorf("corner (%v, %v) maps off-screen to (%f, %f)", p[0], p[1], sx, sy)
		}
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000)

	sx, sy := cam.WorldToScreen(500, 500)
	if !near(sx, 500) || !near(sy, 500) {
		t.Errorf("expected screen center (500, 500), got (%f, %f)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("expected origin at (0, 0), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1000, 800, 1000, 1000)
	cam.SetZoom(2)
	cam.Pan(100, -50)

	testCases := []struct{ sx, sy float32 }{
		{500, 400},
		{100, 100},
		{900, 700},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToArena(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000)
	cam.SetZoom(2)

	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("view escaped arena: min = (%f, %f)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1000) || !near(maxY, 1000) {
		t.Errorf("view escaped arena: max = (%f, %f)", maxX, maxY)
	}
}

func TestPanAtFitZoomStaysCentered(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000)
	cam.Pan(300, 300)
	if cam.X != 500 || cam.Y != 500 {
		t.Errorf("fit view moved to (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamping(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000)

	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}
	cam.ZoomBy(0.0001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000)
	cam.SetZoom(4)
	cam.Pan(-10000, -10000) // view [0, 250] on both axes

	if !cam.IsVisible(100, 100, 1) {
		t.Error("point inside view reported invisible")
	}
	if cam.IsVisible(600, 600, 10) {
		t.Error("point far outside view reported visible")
	}
	if !cam.IsVisible(255, 100, 10) {
		t.Error("circle overlapping view edge reported invisible")
	}
}

func TestResize(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000)
	cam.Resize(500, 500)
	if !near(cam.MinZoom, 0.5) || cam.Zoom < cam.MinZoom {
		t.Errorf("after resize min=%f zoom=%f", cam.MinZoom, cam.Zoom)
	}
	if !near(cam.Scale(100), cam.Zoom*100) {
		t.Errorf("Scale(100) = %f", cam.Scale(100))
	}
}
