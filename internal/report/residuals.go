package report

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// ResidualStats summarises photon elevation minus estimate for one class.
type ResidualStats struct {
	Class  photon.Class `json:"class"`
	Count  int          `json:"count"`
	Mean   float64      `json:"mean"`
	StdDev float64      `json:"std_dev"`
	MaxAbs float64      `json:"max_abs"`
}

// Residuals returns statistics for sea surface photons against the surface
// estimate and bathymetry photons against the bathymetry estimate. Photons
// without an estimate are skipped. Empty classes report NaN moments.
func Residuals(points []photon.Photon) []ResidualStats {
	return []ResidualStats{
		residuals(points, photon.SeaSurface, func(p *photon.Photon) float64 { return p.SurfaceElevation }),
		residuals(points, photon.Bathymetry, func(p *photon.Photon) float64 { return p.BathyElevation }),
	}
}

func residuals(points []photon.Photon, cls photon.Class, est func(*photon.Photon) float64) ResidualStats {
	var r []float64
	for i := range points {
		p := &points[i]
		if p.Prediction != cls || !photon.IsDefined(est(p)) {
			continue
		}
		r = append(r, p.Z-est(p))
	}
	s := ResidualStats{Class: cls, Count: len(r), Mean: math.NaN(), StdDev: math.NaN()}
	if len(r) == 0 {
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(r, nil)
	for _, v := range r {
		s.MaxAbs = math.Max(s.MaxAbs, math.Abs(v))
	}
	return s
}
