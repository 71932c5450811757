package blunder

import (
	"errors"
	"fmt"
)

// MaxDepthBuffer caps the minimum depth, in metres, that bathymetry must lie
// below the surface estimate regardless of local surface variance.
const MaxDepthBuffer = 1.0

// Params holds the numeric thresholds for every check. All distances and
// elevations are metres.
type Params struct {
	SurfaceMinElevation float64
	SurfaceMaxElevation float64
	BathyMinElevation   float64

	SurfaceRange float64
	BathyRange   float64

	// SurfaceBinSize is the along-track bin used for surface variance in the
	// depth check; SurfaceDepthFactor scales its standard deviation.
	SurfaceBinSize     float64
	SurfaceDepthFactor float64

	IsolatedBathyRadius     float64
	IsolatedBathyMinPhotons int

	// Workers bounds goroutines used for neighbour counting. Results do not
	// depend on it.
	Workers int
}

// DefaultParams returns production thresholds.
func DefaultParams() Params {
	return Params{
		SurfaceMinElevation:     -20,
		SurfaceMaxElevation:     20,
		BathyMinElevation:       -100,
		SurfaceRange:            3,
		BathyRange:              3,
		SurfaceBinSize:          30,
		SurfaceDepthFactor:      10,
		IsolatedBathyRadius:     5,
		IsolatedBathyMinPhotons: 5,
		Workers:                 1,
	}
}

// Validate checks that the thresholds describe a usable configuration.
func (p Params) Validate() error {
	var errs []error
	if !(p.SurfaceMinElevation < p.SurfaceMaxElevation) {
		errs = append(errs, fmt.Errorf("surface_min_elevation %v must be below surface_max_elevation %v",
			p.SurfaceMinElevation, p.SurfaceMaxElevation))
	}
	if !(p.SurfaceRange >= 0) {
		errs = append(errs, fmt.Errorf("surface_range must be non-negative, got %v", p.SurfaceRange))
	}
	if !(p.BathyRange >= 0) {
		errs = append(errs, fmt.Errorf("bathy_range must be non-negative, got %v", p.BathyRange))
	}
	if !(p.SurfaceBinSize > 0) {
		errs = append(errs, fmt.Errorf("blunder_surface_bin_size must be positive, got %v", p.SurfaceBinSize))
	}
	if !(p.SurfaceDepthFactor >= 0) {
		errs = append(errs, fmt.Errorf("blunder_surface_depth_factor must be non-negative, got %v", p.SurfaceDepthFactor))
	}
	if !(p.IsolatedBathyRadius > 0) {
		errs = append(errs, fmt.Errorf("isolated_bathy_radius must be positive, got %v", p.IsolatedBathyRadius))
	}
	if p.IsolatedBathyMinPhotons < 1 {
		errs = append(errs, fmt.Errorf("isolated_bathy_min_photons must be >= 1, got %d", p.IsolatedBathyMinPhotons))
	}
	if p.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", p.Workers))
	}
	return errors.Join(errs...)
}
