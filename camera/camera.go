// Package camera provides a 2D pan/zoom view over the square sensor frame,
// used by the viewer to inspect a full-resolution readout inside a smaller
// preview area.
package camera

// View controls which part of the sensor is shown in the preview.
// The sensor is finite, so panning clamps at the edges instead of wrapping.
type View struct {
	// Position is the view center in sensor pixel coordinates
	X, Y float32

	// Zoom level in preview pixels per sensor pixel
	Zoom float32

	// Preview is the square preview side length in screen pixels
	Preview float32

	// Resolution is the sensor side length in pixels
	Resolution float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a view centered on the sensor, fitted so the whole frame is
// visible in the preview.
func New(preview, resolution float32) *View {
	fit := preview / resolution
	return &View{
		X:          resolution / 2,
		Y:          resolution / 2,
		Zoom:       fit,
		Preview:    preview,
		Resolution: resolution,
		MinZoom:    fit,
		MaxZoom:    16,
	}
}

// SensorToScreen converts sensor pixel coordinates to preview coordinates.
func (v *View) SensorToScreen(px, py float32) (sx, sy float32) {
	sx = v.Preview/2 + (px-v.X)*v.Zoom
	sy = v.Preview/2 + (py-v.Y)*v.Zoom
	return sx, sy
}

// ScreenToSensor converts preview coordinates to sensor pixel coordinates.
func (v *View) ScreenToSensor(sx, sy float32) (px, py float32) {
	px = v.X + (sx-v.Preview/2)/v.Zoom
	py = v.Y + (sy-v.Preview/2)/v.Zoom
	return px, py
}

// VisibleRect returns the sensor-coordinate rectangle currently shown,
// as (x, y, width, height). It is the source rectangle for drawing the
// readout texture into the preview.
func (v *View) VisibleRect() (x, y, w, h float32) {
	half := v.Preview / (2 * v.Zoom)
	return v.X - half, v.Y - half, 2 * half, 2 * half
}

// Pan moves the view by a screen-pixel delta, clamped to the sensor.
func (v *View) Pan(dx, dy float32) {
	v.X += dx / v.Zoom
	v.Y += dy / v.Zoom
	v.clamp()
}

// ZoomAt zooms by factor while keeping the sensor point under the given
// preview position fixed on screen.
func (v *View) ZoomAt(sx, sy, factor float32) {
	px, py := v.ScreenToSensor(sx, sy)
	v.Zoom = clamp(v.Zoom*factor, v.MinZoom, v.MaxZoom)
	// Re-center so (px, py) stays under (sx, sy)
	v.X = px - (sx-v.Preview/2)/v.Zoom
	v.Y = py - (sy-v.Preview/2)/v.Zoom
	v.clamp()
}

// Reset restores the fitted whole-frame view.
func (v *View) Reset() {
	v.X = v.Resolution / 2
	v.Y = v.Resolution / 2
	v.Zoom = v.MinZoom
}

// clamp keeps the visible rectangle inside the sensor where possible.
func (v *View) clamp() {
	half := v.Preview / (2 * v.Zoom)
	if half >= v.Resolution/2 {
		// Zoomed out past the frame: lock to center.
		v.X = v.Resolution / 2
		v.Y = v.Resolution / 2
		return
	}
	v.X = clamp(v.X, half, v.Resolution-half)
	v.Y = clamp(v.Y, half, v.Resolution-half)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
