package blunder

import (
	"github.com/banshee-data/bathy.report/internal/monitoring"
	"github.com/banshee-data/bathy.report/internal/photon"
)

// Summary counts the photons demoted by each check in one Detect call.
type Summary struct {
	SurfaceElevation int `json:"surface_elevation"`
	BathyElevation   int `json:"bathy_elevation"`
	BathyDepth       int `json:"bathy_depth"`
	SurfaceRange     int `json:"surface_range"`
	BathyRange       int `json:"bathy_range"`
	IsolatedBathy    int `json:"isolated_bathy"`
}

// Total returns the number of demotions across all checks.
func (s Summary) Total() int {
	return s.SurfaceElevation + s.BathyElevation + s.BathyDepth +
		s.SurfaceRange + s.BathyRange + s.IsolatedBathy
}

// Add accumulates another summary into s.
func (s *Summary) Add(o Summary) {
	s.SurfaceElevation += o.SurfaceElevation
	s.BathyElevation += o.BathyElevation
	s.BathyDepth += o.BathyDepth
	s.SurfaceRange += o.SurfaceRange
	s.BathyRange += o.BathyRange
	s.IsolatedBathy += o.IsolatedBathy
}

// Detector runs the blunder checks with fixed thresholds.
type Detector struct {
	Params Params
}

// NewDetector returns a Detector using params.
func NewDetector(params Params) *Detector {
	return &Detector{Params: params}
}

// Detect applies every check in order to points, which must be sorted by X
// and already carry surface and bathymetry estimates.
func (d *Detector) Detect(points []photon.Photon) Summary {
	var s Summary
	if len(points) == 0 {
		return s
	}
	photon.MustBeSorted(points)

	p := d.Params
	s.SurfaceElevation = SurfaceElevationCheck(points, p.SurfaceMinElevation, p.SurfaceMaxElevation)
	s.BathyElevation = BathyElevationCheck(points, p.BathyMinElevation)
	s.BathyDepth = BathyDepthCheck(points, p.SurfaceBinSize, p.SurfaceDepthFactor)
	s.SurfaceRange = SurfaceRangeCheck(points, p.SurfaceRange)
	s.BathyRange = BathyRangeCheck(points, p.BathyRange)
	s.IsolatedBathy = FilterIsolatedBathy(points, p.IsolatedBathyRadius, p.IsolatedBathyMinPhotons, p.Workers)

	monitoring.Debugf("blunder: demoted surface_elev=%d bathy_elev=%d bathy_depth=%d surface_range=%d bathy_range=%d isolated=%d",
		s.SurfaceElevation, s.BathyElevation, s.BathyDepth, s.SurfaceRange, s.BathyRange, s.IsolatedBathy)
	return s
}
