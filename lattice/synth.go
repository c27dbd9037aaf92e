package lattice

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Image is the result of one synthesis run.
type Image struct {
	Params Params

	// XLoc and YLoc hold every detection event in pixel coordinates,
	// signal photons first and dark counts appended, paired by index.
	// Events falling outside the frame are kept here; only rasterization
	// drops them.
	XLoc []int
	YLoc []int

	// ActualLattice is the ground-truth occupancy grid, indexed
	// [row][col] with exactly Params.NAtom ones. Validation data only;
	// it never feeds back into the imaging model.
	ActualLattice [][]int

	// PixelGrid is the rescaled sensor readout, indexed [y][x]. Its
	// maximum is PeakIntensity+Baseline and its minimum is Baseline.
	PixelGrid [][]float64

	// DarkCounts is the number of background events appended to the
	// coordinate lists.
	DarkCounts int
}

// Events returns the total number of detection events recorded.
func (img *Image) Events() int { return len(img.XLoc) }

// Synthesize produces one labeled camera frame. It is a single pure
// computation: all randomness comes from rng, so a freshly seeded generator
// reproduces the frame exactly. rng must not be shared across goroutines
// while a call is in flight.
//
// Atom placement draws NAtom distinct sites uniformly from the N*N grid.
// Each atom then scatters NPhoton photons from an isotropic Gaussian centered
// on its site, and a single pooled Poisson draw with mean LamBackg*NBackg
// supplies the dark counts (equivalent in distribution to summing NBackg
// individual Poisson(LamBackg) draws).
func Synthesize(p Params, rng *rand.Rand) (*Image, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	img := &Image{Params: p}

	// Sites without repetition: the first NAtom entries of a permutation
	// of the flat site indices.
	sites := rng.Perm(p.N * p.N)[:p.NAtom]

	img.ActualLattice = make([][]int, p.N)
	for i := range img.ActualLattice {
		img.ActualLattice[i] = make([]int, p.N)
	}
	for _, s := range sites {
		col, row := s/p.N, s%p.N
		img.ActualLattice[row][col] = 1
	}

	img.XLoc = make([]int, 0, p.NAtom*p.NPhoton)
	img.YLoc = make([]int, 0, p.NAtom*p.NPhoton)

	// The emission profile is parameterised by its per-axis variance;
	// distuv wants a standard deviation.
	sigma := math.Sqrt(p.Std)
	centers := Centers(p.N, p.M)
	for _, s := range sites {
		cx, cy := centers.Site(s)
		gx := distuv.Normal{Mu: cx, Sigma: sigma, Src: rng}
		gy := distuv.Normal{Mu: cy, Sigma: sigma, Src: rng}
		for i := 0; i < p.NPhoton; i++ {
			x := int(math.RoundToEven(gx.Rand())) + p.LatticeOrigin[0]
			y := int(math.RoundToEven(gy.Rand())) + p.LatticeOrigin[1]
			img.XLoc = append(img.XLoc, x)
			img.YLoc = append(img.YLoc, y)
		}
	}

	if p.NBackg > 0 {
		pois := distuv.Poisson{Lambda: p.LamBackg * float64(p.NBackg), Src: rng}
		img.DarkCounts = int(pois.Rand())
	}
	for i := 0; i < img.DarkCounts; i++ {
		img.XLoc = append(img.XLoc, rng.IntN(p.CCDResolution))
		img.YLoc = append(img.YLoc, rng.IntN(p.CCDResolution))
	}

	grid, err := rasterize(img.XLoc, img.YLoc, p.CCDResolution)
	if err != nil {
		return nil, err
	}
	img.PixelGrid = grid
	return img, nil
}

// rasterize accumulates detection events into a res x res count grid and
// applies the camera transfer. Events on the zero row or zero column are
// dropped along with anything out of frame (strictly 0 < x < res and
// 0 < y < res; the exclusive lower bound is the source model's literal
// boundary policy and is pinned by tests).
func rasterize(xs, ys []int, res int) ([][]float64, error) {
	grid := make([][]float64, res)
	for i := range grid {
		grid[i] = make([]float64, res)
	}
	peak := 0.0
	for i := range xs {
		x, y := xs[i], ys[i]
		if x <= 0 || x >= res || y <= 0 || y >= res {
			continue
		}
		grid[y][x]++
		if grid[y][x] > peak {
			peak = grid[y][x]
		}
	}
	if peak == 0 {
		return nil, fmt.Errorf("%w: no in-frame detections to scale", ErrDegenerateImage)
	}

	scale := PeakIntensity / peak
	for y := range grid {
		row := grid[y]
		for x := range row {
			row[x] = row[x]*scale + Baseline
		}
	}
	return grid, nil
}
