package export

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/pthm-cable/latticegen/lattice"
)

// GridImage converts a pixel grid into a 16-bit grayscale image, mapping the
// camera baseline to black and the peak readout to white.
func GridImage(grid [][]float64) *image.Gray16 {
	h := len(grid)
	w := 0
	if h > 0 {
		w = len(grid[0])
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y, row := range grid {
		for x, v := range row {
			level := (v - lattice.Baseline) / lattice.PeakIntensity
			if level < 0 {
				level = 0
			} else if level > 1 {
				level = 1
			}
			g := uint16(level * 0xffff)
			// Gray16 stores big-endian pairs; Pix avoids a color
			// conversion per pixel.
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(g >> 8)
			img.Pix[i+1] = uint8(g)
		}
	}
	return img
}

// WritePNG renders the pixel grid to a grayscale PNG file.
func WritePNG(path string, grid [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, GridImage(grid)); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
