package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/bathy.report/internal/bathy/blunder"
	"github.com/banshee-data/bathy.report/internal/bathy/pipeline"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the post-processing parameters. Every field is a
// pointer so a partial file only overrides what it names; the Get* methods
// supply the defaults for the rest.
type TuningConfig struct {
	// Elevation bounds
	SurfaceMinElevation *float64 `json:"surface_min_elevation,omitempty"`
	SurfaceMaxElevation *float64 `json:"surface_max_elevation,omitempty"`
	BathyMinElevation   *float64 `json:"bathy_min_elevation,omitempty"`

	// Distance from the smoothed profiles
	SurfaceRange *float64 `json:"surface_range,omitempty"`
	BathyRange   *float64 `json:"bathy_range,omitempty"`

	// Profile smoothing
	SurfaceSigma *float64 `json:"surface_sigma,omitempty"`
	BathySigma   *float64 `json:"bathy_sigma,omitempty"`

	// Depth check
	BlunderSurfaceBinSize     *float64 `json:"blunder_surface_bin_size,omitempty"`
	BlunderSurfaceDepthFactor *float64 `json:"blunder_surface_depth_factor,omitempty"`

	// Isolated bathymetry filter
	IsolatedBathyRadius     *float64 `json:"isolated_bathy_radius,omitempty"`
	IsolatedBathyMinPhotons *int     `json:"isolated_bathy_min_photons,omitempty"`

	PassCount *int `json:"pass_count,omitempty"`
	Workers   *int `json:"workers,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field set to its
// default value.
func DefaultTuningConfig() *TuningConfig {
	p := pipeline.DefaultParams()
	return FromParams(p)
}

// FromParams returns a fully populated TuningConfig describing p.
func FromParams(p pipeline.Params) *TuningConfig {
	b := p.Blunder
	return &TuningConfig{
		SurfaceMinElevation:       ptrFloat64(b.SurfaceMinElevation),
		SurfaceMaxElevation:       ptrFloat64(b.SurfaceMaxElevation),
		BathyMinElevation:         ptrFloat64(b.BathyMinElevation),
		SurfaceRange:              ptrFloat64(b.SurfaceRange),
		BathyRange:                ptrFloat64(b.BathyRange),
		SurfaceSigma:              ptrFloat64(p.SurfaceSigma),
		BathySigma:                ptrFloat64(p.BathySigma),
		BlunderSurfaceBinSize:     ptrFloat64(b.SurfaceBinSize),
		BlunderSurfaceDepthFactor: ptrFloat64(b.SurfaceDepthFactor),
		IsolatedBathyRadius:       ptrFloat64(b.IsolatedBathyRadius),
		IsolatedBathyMinPhotons:   ptrInt(b.IsolatedBathyMinPhotons),
		PassCount:                 ptrInt(p.Passes),
		Workers:                   ptrInt(b.Workers),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,          // from cmd/<tool>/
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/bathy/pipeline/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the resolved parameters are usable.
func (c *TuningConfig) Validate() error {
	return c.PipelineParams().Validate()
}

// BlunderParams returns the blunder detection thresholds, with defaults for
// any field left unset.
func (c *TuningConfig) BlunderParams() blunder.Params {
	return blunder.Params{
		SurfaceMinElevation:     c.GetSurfaceMinElevation(),
		SurfaceMaxElevation:     c.GetSurfaceMaxElevation(),
		BathyMinElevation:       c.GetBathyMinElevation(),
		SurfaceRange:            c.GetSurfaceRange(),
		BathyRange:              c.GetBathyRange(),
		SurfaceBinSize:          c.GetBlunderSurfaceBinSize(),
		SurfaceDepthFactor:      c.GetBlunderSurfaceDepthFactor(),
		IsolatedBathyRadius:     c.GetIsolatedBathyRadius(),
		IsolatedBathyMinPhotons: c.GetIsolatedBathyMinPhotons(),
		Workers:                 c.GetWorkers(),
	}
}

// PipelineParams returns the driver parameters, with defaults for any field
// left unset.
func (c *TuningConfig) PipelineParams() pipeline.Params {
	return pipeline.Params{
		Blunder:      c.BlunderParams(),
		SurfaceSigma: c.GetSurfaceSigma(),
		BathySigma:   c.GetBathySigma(),
		Passes:       c.GetPassCount(),
	}
}

// GetSurfaceMinElevation returns the surface_min_elevation value or the default.
func (c *TuningConfig) GetSurfaceMinElevation() float64 {
	if c.SurfaceMinElevation == nil {
		return -20
	}
	return *c.SurfaceMinElevation
}

// GetSurfaceMaxElevation returns the surface_max_elevation value or the default.
func (c *TuningConfig) GetSurfaceMaxElevation() float64 {
	if c.SurfaceMaxElevation == nil {
		return 20
	}
	return *c.SurfaceMaxElevation
}

// GetBathyMinElevation returns the bathy_min_elevation value or the default.
func (c *TuningConfig) GetBathyMinElevation() float64 {
	if c.BathyMinElevation == nil {
		return -100
	}
	return *c.BathyMinElevation
}

// GetSurfaceRange returns the surface_range value or the default.
func (c *TuningConfig) GetSurfaceRange() float64 {
	if c.SurfaceRange == nil {
		return 3
	}
	return *c.SurfaceRange
}

// GetBathyRange returns the bathy_range value or the default.
func (c *TuningConfig) GetBathyRange() float64 {
	if c.BathyRange == nil {
		return 3
	}
	return *c.BathyRange
}

// GetSurfaceSigma returns the surface_sigma value or the default.
func (c *TuningConfig) GetSurfaceSigma() float64 {
	if c.SurfaceSigma == nil {
		return 100
	}
	return *c.SurfaceSigma
}

// GetBathySigma returns the bathy_sigma value or the default.
func (c *TuningConfig) GetBathySigma() float64 {
	if c.BathySigma == nil {
		return 60
	}
	return *c.BathySigma
}

// GetBlunderSurfaceBinSize returns the blunder_surface_bin_size value or the default.
func (c *TuningConfig) GetBlunderSurfaceBinSize() float64 {
	if c.BlunderSurfaceBinSize == nil {
		return 30
	}
	return *c.BlunderSurfaceBinSize
}

// GetBlunderSurfaceDepthFactor returns the blunder_surface_depth_factor value or the default.
func (c *TuningConfig) GetBlunderSurfaceDepthFactor() float64 {
	if c.BlunderSurfaceDepthFactor == nil {
		return 10
	}
	return *c.BlunderSurfaceDepthFactor
}

// GetIsolatedBathyRadius returns the isolated_bathy_radius value or the default.
func (c *TuningConfig) GetIsolatedBathyRadius() float64 {
	if c.IsolatedBathyRadius == nil {
		return 5
	}
	return *c.IsolatedBathyRadius
}

// GetIsolatedBathyMinPhotons returns the isolated_bathy_min_photons value or the default.
func (c *TuningConfig) GetIsolatedBathyMinPhotons() int {
	if c.IsolatedBathyMinPhotons == nil {
		return 5
	}
	return *c.IsolatedBathyMinPhotons
}

// GetPassCount returns the pass_count value or the default.
func (c *TuningConfig) GetPassCount() int {
	if c.PassCount == nil {
		return 3
	}
	return *c.PassCount
}

// GetWorkers returns the workers value or the default.
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}
