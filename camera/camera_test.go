package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	v := New(512, 1024)

	// Should be centered on the sensor, fitted to the preview
	if v.X != 512 || v.Y != 512 {
		t.Errorf("expected view at (512, 512), got (%f, %f)", v.X, v.Y)
	}
	if v.Zoom != 0.5 {
		t.Errorf("expected fitted zoom 0.5, got %f", v.Zoom)
	}
}

func TestSensorToScreenCentered(t *testing.T) {
	v := New(512, 1024)

	// View center should map to preview center
	sx, sy := v.SensorToScreen(512, 512)
	if math.Abs(float64(sx-256)) > 0.01 || math.Abs(float64(sy-256)) > 0.01 {
		t.Errorf("expected preview center (256, 256), got (%f, %f)", sx, sy)
	}
}

func TestScreenToSensorRoundtrip(t *testing.T) {
	v := New(512, 1024)
	v.Zoom = 2
	v.X, v.Y = 300, 700

	testCases := []struct{ sx, sy float32 }{
		{256, 256}, // center
		{10, 10},   // top-left
		{500, 300}, // near bottom-right
	}

	for _, tc := range testCases {
		px, py := v.ScreenToSensor(tc.sx, tc.sy)
		sx, sy := v.SensorToScreen(px, py)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, px, py, sx, sy)
		}
	}
}

func TestVisibleRectFitted(t *testing.T) {
	v := New(512, 1024)

	x, y, w, h := v.VisibleRect()
	if x != 0 || y != 0 || w != 1024 || h != 1024 {
		t.Errorf("fitted view should show the whole frame, got (%f, %f, %f, %f)", x, y, w, h)
	}
}

func TestPanClamps(t *testing.T) {
	v := New(512, 1024)
	v.Zoom = 1 // visible half-extent is 256 sensor pixels

	v.Pan(-1e6, -1e6)
	if v.X != 256 || v.Y != 256 {
		t.Errorf("pan should clamp at the top-left, got (%f, %f)", v.X, v.Y)
	}

	v.Pan(1e6, 1e6)
	if v.X != 768 || v.Y != 768 {
		t.Errorf("pan should clamp at the bottom-right, got (%f, %f)", v.X, v.Y)
	}
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	v := New(512, 1024)
	v.Zoom = 1
	v.X, v.Y = 512, 512

	// Zoom in on a point away from the center
	px, py := v.ScreenToSensor(400, 150)
	v.ZoomAt(400, 150, 2)

	sx, sy := v.SensorToScreen(px, py)
	if math.Abs(float64(sx-400)) > 0.5 || math.Abs(float64(sy-150)) > 0.5 {
		t.Errorf("cursor point moved to (%f, %f), want (400, 150)", sx, sy)
	}
	if v.Zoom != 2 {
		t.Errorf("Zoom = %f, want 2", v.Zoom)
	}
}

func TestZoomClampedToFit(t *testing.T) {
	v := New(512, 1024)
	v.ZoomAt(256, 256, 0.01)
	if v.Zoom != v.MinZoom {
		t.Errorf("Zoom = %f, want MinZoom %f", v.Zoom, v.MinZoom)
	}
	// Fully zoomed out, the view locks to the sensor center.
	if v.X != 512 || v.Y != 512 {
		t.Errorf("view should re-center when fitted, got (%f, %f)", v.X, v.Y)
	}
}

func TestReset(t *testing.T) {
	v := New(512, 1024)
	v.ZoomAt(100, 100, 8)
	v.Pan(300, -200)

	v.Reset()
	if v.X != 512 || v.Y != 512 || v.Zoom != v.MinZoom {
		t.Errorf("Reset left view at (%f, %f) zoom %f", v.X, v.Y, v.Zoom)
	}
}
