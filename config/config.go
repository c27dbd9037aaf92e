// Package config provides configuration loading and access for the image
// synthesizer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/latticegen/lattice"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all synthesis and viewer configuration parameters.
type Config struct {
	Lattice LatticeConfig `yaml:"lattice"`
	Camera  CameraConfig  `yaml:"camera"`
	Noise   NoiseConfig   `yaml:"noise"`
	Viewer  ViewerConfig  `yaml:"viewer"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// LatticeConfig holds lattice geometry and occupation parameters.
type LatticeConfig struct {
	Sites          int `yaml:"sites"`            // N: sites along one axis
	PixelsPerSite  int `yaml:"pixels_per_site"`  // M: pixels per site along one axis
	Atoms          int `yaml:"atoms"`            // occupied sites
	PhotonsPerAtom int `yaml:"photons_per_atom"` // fluorescence samples per atom
}

// CameraConfig holds sensor geometry.
type CameraConfig struct {
	Resolution int `yaml:"resolution"` // square sensor side length in pixels
	OriginX    int `yaml:"origin_x"`   // top-left corner of the lattice region
	OriginY    int `yaml:"origin_y"`
}

// NoiseConfig holds the stochastic model parameters.
type NoiseConfig struct {
	Variance          float64 `yaml:"variance"`           // per-axis emission variance
	BackgroundSamples int     `yaml:"background_samples"` // pooled Poisson samples
	DarkRate          float64 `yaml:"dark_rate"`          // mean dark counts per sample
}

// ViewerConfig holds interactive viewer display settings.
type ViewerConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	LatticeSpan  int  // lattice region side length in pixels (N*M)
	LatticeFits  bool // whether the lattice region lies inside the sensor
	TotalSites   int  // N*N
	SignalEvents int  // atoms * photons_per_atom
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	span := c.Lattice.Sites * c.Lattice.PixelsPerSite
	c.Derived.LatticeSpan = span
	c.Derived.TotalSites = c.Lattice.Sites * c.Lattice.Sites
	c.Derived.SignalEvents = c.Lattice.Atoms * c.Lattice.PhotonsPerAtom

	// The lattice region may legally overhang the sensor; overhanging
	// events are simply never rasterized. Record the fit so callers can
	// warn about it.
	c.Derived.LatticeFits = c.Camera.OriginX >= 0 && c.Camera.OriginY >= 0 &&
		c.Camera.OriginX+span <= c.Camera.Resolution &&
		c.Camera.OriginY+span <= c.Camera.Resolution
}

// Params converts the loaded configuration into synthesis parameters.
func (c *Config) Params() lattice.Params {
	return lattice.Params{
		N:             c.Lattice.Sites,
		M:             c.Lattice.PixelsPerSite,
		NAtom:         c.Lattice.Atoms,
		NPhoton:       c.Lattice.PhotonsPerAtom,
		CCDResolution: c.Camera.Resolution,
		LatticeOrigin: [2]int{c.Camera.OriginX, c.Camera.OriginY},
		Std:           c.Noise.Variance,
		NBackg:        c.Noise.BackgroundSamples,
		LamBackg:      c.Noise.DarkRate,
	}
}

// WriteYAML saves the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
