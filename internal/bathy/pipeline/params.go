package pipeline

import (
	"errors"
	"fmt"

	"github.com/banshee-data/bathy.report/internal/bathy/blunder"
)

// Params configures a Driver.
type Params struct {
	Blunder blunder.Params

	// SurfaceSigma and BathySigma are the Gaussian smoothing scales, in
	// metres, of the surface and seafloor profiles.
	SurfaceSigma float64
	BathySigma   float64

	// Passes is the number of estimate-then-detect passes.
	Passes int
}

// DefaultParams returns production settings.
func DefaultParams() Params {
	return Params{
		Blunder:      blunder.DefaultParams(),
		SurfaceSigma: 100,
		BathySigma:   60,
		Passes:       3,
	}
}

// Validate checks every field, including the blunder thresholds.
func (p Params) Validate() error {
	var errs []error
	if err := p.Blunder.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !(p.SurfaceSigma > 0) {
		errs = append(errs, fmt.Errorf("surface_sigma must be positive, got %v", p.SurfaceSigma))
	}
	if !(p.BathySigma > 0) {
		errs = append(errs, fmt.Errorf("bathy_sigma must be positive, got %v", p.BathySigma))
	}
	if p.Passes < 1 {
		errs = append(errs, fmt.Errorf("pass_count must be >= 1, got %d", p.Passes))
	}
	return errors.Join(errs...)
}
