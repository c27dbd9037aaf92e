package export

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/latticegen/lattice"
)

// Event sources in events.csv.
const (
	SourceSignal     = "signal"
	SourceBackground = "background"
)

// Event is one detection event row in events.csv. Rows appear in the same
// order as the synthesizer's coordinate lists: signal first, dark counts
// appended.
type Event struct {
	X      int    `csv:"x"`
	Y      int    `csv:"y"`
	Source string `csv:"source"`
}

// Summary is one frame's row in summary.csv.
type Summary struct {
	Frame         string  `csv:"frame"`
	Sites         int     `csv:"sites"`
	Atoms         int     `csv:"atoms"`
	Filling       float64 `csv:"filling"`
	SignalEvents  int     `csv:"signal_events"`
	DarkCounts    int     `csv:"dark_counts"`
	TotalEvents   int     `csv:"total_events"`
	MeanIntensity float64 `csv:"mean_intensity"`
	StdIntensity  float64 `csv:"std_intensity"`
}

// Summarize computes the summary row for a synthesized frame.
func Summarize(name string, img *lattice.Image) Summary {
	p := img.Params

	flat := make([]float64, 0, p.CCDResolution*p.CCDResolution)
	for _, row := range img.PixelGrid {
		flat = append(flat, row...)
	}
	mean, std := stat.MeanStdDev(flat, nil)

	totalSites := p.N * p.N
	return Summary{
		Frame:         name,
		Sites:         totalSites,
		Atoms:         p.NAtom,
		Filling:       float64(p.NAtom) / float64(totalSites),
		SignalEvents:  p.NAtom * p.NPhoton,
		DarkCounts:    img.DarkCounts,
		TotalEvents:   img.Events(),
		MeanIntensity: mean,
		StdIntensity:  std,
	}
}
