package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/latticegen/config"
	"github.com/pthm-cable/latticegen/export"
	"github.com/pthm-cable/latticegen/figures"
	"github.com/pthm-cable/latticegen/lattice"
	"github.com/pthm-cable/latticegen/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Generate frames without opening the viewer")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for labeled frames")
	count := flag.Int("count", 1, "Number of frames to generate in headless mode")
	plots := flag.Bool("figures", false, "Also write scatter and heatmap figures per frame")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if !cfg.Derived.LatticeFits {
		slog.Warn("lattice region overhangs the sensor; overhanging events are never rasterized",
			"span", cfg.Derived.LatticeSpan,
			"origin_x", cfg.Camera.OriginX,
			"origin_y", cfg.Camera.OriginY,
			"resolution", cfg.Camera.Resolution)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(rngSeed, rngSeed))
	slog.Info("starting", "seed", rngSeed, "headless", *headless)

	if *headless {
		if *outputDir == "" {
			slog.Warn("headless run without -output-dir discards all frames")
		}
		if err := generate(cfg, rng, *outputDir, *count, *plots); err != nil {
			slog.Error("generation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := viewer.Run(cfg, viewer.OptionsFromConfig(cfg, *outputDir), rng); err != nil {
		slog.Error("viewer failed", "error", err)
		os.Exit(1)
	}
}

// generate synthesizes count frames and writes each as a labeled dataset
// entry, optionally with figures.
func generate(cfg *config.Config, rng *rand.Rand, outputDir string, count int, plots bool) error {
	om, err := export.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	p := cfg.Params()
	for i := 0; i < count; i++ {
		img, err := lattice.Synthesize(p, rng)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		name := fmt.Sprintf("frame_%03d", i)
		if err := om.WriteFrame(name, img); err != nil {
			return err
		}
		if plots && om.Dir() != "" {
			frameDir := filepath.Join(om.Dir(), name)
			if err := figures.Scatter(img, filepath.Join(frameDir, "scatter.png"), figures.ScatterOptions{}); err != nil {
				return err
			}
			if err := figures.Heatmap(img, filepath.Join(frameDir, "heatmap.png")); err != nil {
				return err
			}
		}

		slog.Info("frame generated",
			"frame", name,
			"atoms", p.NAtom,
			"events", img.Events(),
			"dark_counts", img.DarkCounts)
	}
	return nil
}
