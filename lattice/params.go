// Package lattice synthesizes realistic camera frames of atoms trapped on a
// two-dimensional optical lattice: ground-truth site occupancy, the individual
// photon detection events a CCD would record (atom fluorescence plus Poisson
// dark counts), and the rasterized intensity grid built from those events.
// The outputs are meant as labeled test data for occupation-inference
// pipelines.
package lattice

import (
	"errors"
	"fmt"
)

// Camera transfer constants. The rasterized count grid is stretched so the
// brightest pixel reads PeakIntensity, then every pixel is offset by Baseline.
const (
	PeakIntensity = 5000.0
	Baseline      = 600.0
)

// Sentinel errors returned by Synthesize. Both reflect caller input; neither
// is transient, so there is no retry path inside the package.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrDegenerateImage  = errors.New("degenerate image")
)

// Params holds all inputs to a single synthesis run.
type Params struct {
	N             int     // lattice sites along one axis (NxN sites total)
	M             int     // camera pixels per site along one axis
	NAtom         int     // atoms placed on the lattice
	NPhoton       int     // photons sampled per atom
	CCDResolution int     // pixels along one axis of the square sensor
	LatticeOrigin [2]int  // top-left pixel of the lattice region in the frame
	Std           float64 // per-axis variance of the Gaussian emission profile
	NBackg        int     // background samples pooled into the dark-count draw
	LamBackg      float64 // mean dark counts per background sample
}

// DefaultParams returns Params with the documented camera and noise defaults
// filled in. Lattice geometry and atom counts have no meaningful defaults and
// are taken as arguments.
func DefaultParams(n, m, nAtom, nPhoton int) Params {
	return Params{
		N:             n,
		M:             m,
		NAtom:         nAtom,
		NPhoton:       nPhoton,
		CCDResolution: 1024,
		LatticeOrigin: [2]int{400, 600},
		Std:           10,
		NBackg:        2000,
		LamBackg:      200,
	}
}

// Span returns the side length of the lattice region in pixels.
func (p Params) Span() int { return p.N * p.M }

// Validate checks all parameters before any sampling happens. NAtom and
// NBackg may be zero (an empty lattice or a noiseless sensor are both valid,
// though both at once produce no detections and fail later with
// ErrDegenerateImage); everything else must be strictly positive.
func (p Params) Validate() error {
	switch {
	case p.N <= 0:
		return fmt.Errorf("%w: lattice sites N = %d, want > 0", ErrInvalidParameter, p.N)
	case p.M <= 0:
		return fmt.Errorf("%w: pixels per site M = %d, want > 0", ErrInvalidParameter, p.M)
	case p.NAtom < 0:
		return fmt.Errorf("%w: atom count %d, want >= 0", ErrInvalidParameter, p.NAtom)
	case p.NPhoton <= 0:
		return fmt.Errorf("%w: photons per atom %d, want > 0", ErrInvalidParameter, p.NPhoton)
	case p.CCDResolution <= 0:
		return fmt.Errorf("%w: CCD resolution %d, want > 0", ErrInvalidParameter, p.CCDResolution)
	case p.Std <= 0:
		return fmt.Errorf("%w: emission variance %v, want > 0", ErrInvalidParameter, p.Std)
	case p.NBackg < 0:
		return fmt.Errorf("%w: background samples %d, want >= 0", ErrInvalidParameter, p.NBackg)
	case p.LamBackg <= 0:
		return fmt.Errorf("%w: dark-count rate %v, want > 0", ErrInvalidParameter, p.LamBackg)
	}
	if p.NAtom > p.N*p.N {
		return fmt.Errorf("%w: cannot place %d atoms on %d sites without repetition",
			ErrInvalidParameter, p.NAtom, p.N*p.N)
	}
	return nil
}
