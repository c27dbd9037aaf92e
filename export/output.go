// Package export writes synthesized frames to disk as labeled training data:
// per-event CSV coordinates, the ground-truth occupancy grid, a 16-bit PNG of
// the sensor readout, and a run-level summary CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/latticegen/config"
	"github.com/pthm-cable/latticegen/lattice"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir         string
	summaryFile *os.File

	summaryHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	summaryPath := filepath.Join(dir, "summary.csv")
	f, err := os.Create(summaryPath)
	if err != nil {
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteFrame writes one synthesized frame into a subdirectory named after the
// frame: events.csv (every detection event), lattice.csv (ground truth), and
// image.png (the sensor readout). A summary row is appended to summary.csv.
func (om *OutputManager) WriteFrame(name string, img *lattice.Image) error {
	if om == nil {
		return nil
	}

	frameDir := filepath.Join(om.dir, name)
	if err := os.MkdirAll(frameDir, 0755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}

	if err := writeEvents(filepath.Join(frameDir, "events.csv"), img); err != nil {
		return err
	}
	if err := writeLattice(filepath.Join(frameDir, "lattice.csv"), img.ActualLattice); err != nil {
		return err
	}
	if err := WritePNG(filepath.Join(frameDir, "image.png"), img.PixelGrid); err != nil {
		return err
	}

	return om.writeSummary(Summarize(name, img))
}

// Close flushes and closes the run-level files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.summaryFile.Close()
}

func (om *OutputManager) writeSummary(s Summary) error {
	records := []Summary{s}

	if !om.summaryHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.summaryFile); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		om.summaryHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.summaryFile); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	return nil
}

func writeEvents(path string, img *lattice.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating events.csv: %w", err)
	}
	defer f.Close()

	records := make([]Event, img.Events())
	signal := img.Params.NAtom * img.Params.NPhoton
	for i := range records {
		source := SourceSignal
		if i >= signal {
			source = SourceBackground
		}
		records[i] = Event{X: img.XLoc[i], Y: img.YLoc[i], Source: source}
	}

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing events.csv: %w", err)
	}
	return nil
}

// writeLattice writes the ground-truth grid one row per line, row 0 first.
func writeLattice(path string, grid [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating lattice.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := make([]string, 0, len(grid))
	for _, gridRow := range grid {
		row = row[:0]
		for _, v := range gridRow {
			row = append(row, strconv.Itoa(v))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing lattice.csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing lattice.csv: %w", err)
	}
	return nil
}
