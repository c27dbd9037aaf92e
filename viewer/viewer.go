// Package viewer provides an interactive raylib window for inspecting
// synthesized lattice frames: the sensor readout as a texture, sliders for
// the sampling parameters, and a ground-truth overlay for eyeballing how well
// occupied sites survive the noise.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"path/filepath"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/latticegen/camera"
	"github.com/pthm-cable/latticegen/config"
	"github.com/pthm-cable/latticegen/export"
	"github.com/pthm-cable/latticegen/lattice"
)

// Options holds viewer display settings.
type Options struct {
	Width     int32
	Height    int32
	TargetFPS int32
	OutputDir string // destination for saved PNGs; "" saves to the working directory
}

// OptionsFromConfig builds viewer options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, outputDir string) Options {
	return Options{
		Width:     int32(cfg.Viewer.Width),
		Height:    int32(cfg.Viewer.Height),
		TargetFPS: int32(cfg.Viewer.TargetFPS),
		OutputDir: outputDir,
	}
}

// Run opens the viewer window and blocks until it is closed. The initial
// frame is synthesized from cfg; sliders mutate a local copy of the
// parameters, so the loaded configuration is never changed. All randomness
// comes from rng.
func Run(cfg *config.Config, opts Options, rng *rand.Rand) error {
	p := cfg.Params()

	rl.InitWindow(opts.Width, opts.Height, "latticegen preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.TargetFPS)

	res := int32(p.CCDResolution)
	blank := rl.GenImageColor(int(res), int(res), rl.Black)
	texture := rl.LoadTextureFromImage(blank)
	rl.UnloadImage(blank)
	defer rl.UnloadTexture(texture)

	previewSize := opts.Height - 20
	if limit := opts.Width - 320; previewSize > limit {
		previewSize = limit
	}
	panelX := float32(previewSize + 20)
	panelWidth := float32(opts.Width) - panelX - 10

	view := camera.New(float32(previewSize), float32(res))

	img, synthErr := lattice.Synthesize(p, rng)
	if synthErr == nil {
		updateTexture(texture, img.PixelGrid)
	}

	showTruth := false
	saved := ""
	frameNo := 0
	needsRegen := false

	for !rl.WindowShouldClose() {
		handleViewInput(view)

		if needsRegen {
			next, err := lattice.Synthesize(p, rng)
			synthErr = err
			if err == nil {
				img = next
				updateTexture(texture, img.PixelGrid)
			}
			saved = ""
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		srcX, srcY, srcW, srcH := view.VisibleRect()
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: srcX, Y: srcY, Width: srcW, Height: srcH},
			rl.Rectangle{X: 10, Y: 10, Width: float32(previewSize), Height: float32(previewSize)},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		if img != nil && showTruth {
			drawGroundTruth(img, view)
		}

		panelY := float32(10)
		rl.DrawText("Synthesis Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		atoms := paramSlider(panelX, &panelY, panelWidth, "Atoms",
			float32(p.NAtom), 0, float32(p.N*p.N), "%.0f")
		if int(atoms) != p.NAtom {
			p.NAtom = int(atoms)
			needsRegen = true
		}

		photons := paramSlider(panelX, &panelY, panelWidth, "Photons per atom",
			float32(p.NPhoton), 1, 5000, "%.0f")
		if int(photons) != p.NPhoton {
			p.NPhoton = int(photons)
			needsRegen = true
		}

		variance := paramSlider(panelX, &panelY, panelWidth, "Emission variance",
			float32(p.Std), 0.5, 100, "%.1f")
		if float64(variance) != p.Std {
			p.Std = float64(variance)
			needsRegen = true
		}

		darkRate := paramSlider(panelX, &panelY, panelWidth, "Dark-count rate",
			float32(p.LamBackg), 0.1, 500, "%.1f")
		if float64(darkRate) != p.LamBackg {
			p.LamBackg = float64(darkRate)
			needsRegen = true
		}

		showTruth = gui.CheckBox(
			rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20},
			"Show ground truth", showTruth)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Regenerate") {
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Save PNG") && img != nil {
			name := savePath(opts.OutputDir, frameNo)
			if err := export.WritePNG(name, img.PixelGrid); err == nil {
				saved = name
				frameNo++
			} else {
				saved = err.Error()
			}
		}
		panelY += 45

		if synthErr != nil {
			msg := "synthesis failed: " + synthErr.Error()
			if errors.Is(synthErr, lattice.ErrDegenerateImage) {
				msg = "no detections: add atoms or background"
			}
			rl.DrawText(msg, int32(panelX), int32(panelY), 14, rl.Maroon)
			panelY += 20
		}
		if img != nil {
			rl.DrawText(fmt.Sprintf("events: %d (dark %d)", img.Events(), img.DarkCounts),
				int32(panelX), int32(panelY), 14, rl.DarkGray)
			panelY += 20
		}
		if saved != "" {
			rl.DrawText("saved "+saved, int32(panelX), int32(panelY), 14, rl.DarkGreen)
		}

		rl.EndDrawing()
	}

	return nil
}

// paramSlider draws one labeled SliderBar row and advances the panel cursor.
func paramSlider(x float32, y *float32, width float32, label string, value, min, max float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: width - 80, Height: 20},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+width-70), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

// handleViewInput applies mouse pan and wheel zoom to the sensor view while
// the cursor is over the preview area.
func handleViewInput(view *camera.View) {
	mouse := rl.GetMousePosition()
	sx, sy := mouse.X-10, mouse.Y-10
	over := sx >= 0 && sx < view.Preview && sy >= 0 && sy < view.Preview
	if !over {
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		view.ZoomAt(sx, sy, factor)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		view.Pan(-delta.X, -delta.Y)
	}
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) {
		view.Reset()
	}
}

// drawGroundTruth marks occupied site centers on the preview using the shared
// center table, mapped through the sensor view.
func drawGroundTruth(img *lattice.Image, view *camera.View) {
	p := img.Params
	centers := lattice.Centers(p.N, p.M)

	for row := range img.ActualLattice {
		for col, v := range img.ActualLattice[row] {
			if v != 1 {
				continue
			}
			cx, cy := centers.Center(col, row)
			sx, sy := view.SensorToScreen(
				float32(cx)+float32(p.LatticeOrigin[0]),
				float32(cy)+float32(p.LatticeOrigin[1]))
			if sx < 0 || sx > view.Preview || sy < 0 || sy > view.Preview {
				continue
			}
			r := float32(p.M) * view.Zoom / 2
			rl.DrawCircleLines(int32(sx)+10, int32(sy)+10, r, rl.Green)
		}
	}
}

// updateTexture maps the rescaled readout onto an 8-bit grayscale texture.
func updateTexture(texture rl.Texture2D, grid [][]float64) {
	size := len(grid)
	pixels := make([]color.RGBA, size*size)
	for y, row := range grid {
		for x, v := range row {
			level := (v - lattice.Baseline) / lattice.PeakIntensity
			if level < 0 {
				level = 0
			} else if level > 1 {
				level = 1
			}
			g := uint8(level * 255)
			pixels[y*size+x] = color.RGBA{R: g, G: g, B: g, A: 255}
		}
	}
	rl.UpdateTexture(texture, pixels)
}

func savePath(dir string, frameNo int) string {
	name := fmt.Sprintf("preview_%03d.png", frameNo)
	return filepath.Join(dir, name)
}
