// Package figures renders synthesized frames to publication-style plots: a
// detection scatter over the lattice region and an intensity heatmap of the
// sensor readout. It only reads synthesizer outputs and never feeds back into
// the statistical model.
package figures

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pthm-cable/latticegen/lattice"
)

// ScatterOptions controls the detection scatter plot.
type ScatterOptions struct {
	// Sites zooms the plot to the first Sites x Sites lattice sites with
	// per-pixel grid lines, useful for checking that events sit on pixel
	// centers. Zero plots the whole frame with site-pitch grid lines.
	Sites int

	// InvertY flips the vertical axis so the plot matches the camera's
	// row order (y grows downward).
	InvertY bool
}

// Scatter writes a scatter plot of every detection event to path. Grid lines
// follow the lattice pitch so occupied sites stand out against background.
func Scatter(img *lattice.Image, path string, opts ScatterOptions) error {
	p := img.Params

	xyMin := [2]float64{float64(p.LatticeOrigin[0]), float64(p.LatticeOrigin[1])}
	span := float64(p.Span())
	pitch := float64(p.M)
	window := span
	if opts.Sites > 0 {
		window = float64(opts.Sites * p.M)
		pitch = 1 // per-pixel grid in the zoomed view
	}

	pts := make(plotter.XYs, 0, img.Events())
	for i := range img.XLoc {
		x, y := float64(img.XLoc[i]), float64(img.YLoc[i])
		if opts.Sites > 0 {
			if x <= xyMin[0] || x >= xyMin[0]+window || y <= xyMin[1] || y >= xyMin[1]+window {
				continue
			}
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}

	pl := plot.New()
	pl.Title.Text = "Detected photons"
	pl.X.Label.Text = "x (px)"
	pl.Y.Label.Text = "y (px)"

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building scatter: %w", err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(0.5)
	sc.GlyphStyle.Color = color.Black
	pl.Add(sc)

	pl.X.Tick.Marker = pitchTicks(xyMin[0], window, pitch)
	pl.Y.Tick.Marker = pitchTicks(xyMin[1], window, pitch)
	pl.Add(plotter.NewGrid())

	if opts.Sites > 0 {
		pl.X.Min, pl.X.Max = xyMin[0], xyMin[0]+window
		pl.Y.Min, pl.Y.Max = xyMin[1], xyMin[1]+window
	} else {
		// Full view spans the sensor: dark counts land anywhere in the
		// frame, not just the lattice region.
		pl.X.Min, pl.X.Max = 0, float64(p.CCDResolution)
		pl.Y.Min, pl.Y.Max = 0, float64(p.CCDResolution)
	}
	if opts.InvertY {
		pl.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}

	if err := pl.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Heatmap writes an intensity heatmap of the full sensor readout to path.
func Heatmap(img *lattice.Image, path string) error {
	pl := plot.New()
	pl.Title.Text = "Sensor readout"
	pl.X.Label.Text = "x (px)"
	pl.Y.Label.Text = "y (px)"

	hm := plotter.NewHeatMap(pixelGrid{img.PixelGrid}, palette.Heat(256, 1))
	pl.Add(hm)

	if err := pl.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// pitchTicks places a labeled tick every pitch pixels across the window.
func pitchTicks(min, window, pitch float64) plot.ConstantTicks {
	var ticks []plot.Tick
	for v := min; v <= min+window; v += pitch {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return plot.ConstantTicks(ticks)
}

// pixelGrid adapts the synthesizer's pixel grid to plotter.GridXYZ.
type pixelGrid struct {
	grid [][]float64
}

func (g pixelGrid) Dims() (c, r int) {
	r = len(g.grid)
	if r > 0 {
		c = len(g.grid[0])
	}
	return c, r
}

func (g pixelGrid) Z(c, r int) float64 { return g.grid[r][c] }
func (g pixelGrid) X(c int) float64    { return float64(c) }
func (g pixelGrid) Y(r int) float64    { return float64(r) }
