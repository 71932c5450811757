package blunder

import (
	"math"

	"github.com/banshee-data/bathy.report/internal/bathy/estimate"
	"github.com/banshee-data/bathy.report/internal/photon"
)

func demote(p *photon.Photon) {
	p.Prediction = photon.Unclassified
}

// SurfaceElevationCheck demotes sea surface photons outside [minZ, maxZ].
func SurfaceElevationCheck(points []photon.Photon, minZ, maxZ float64) int {
	demoted := 0
	for i := range points {
		p := &points[i]
		if p.Prediction != photon.SeaSurface {
			continue
		}
		if p.Z < minZ || p.Z > maxZ {
			demote(p)
			demoted++
		}
	}
	return demoted
}

// BathyElevationCheck demotes bathymetry photons deeper than minZ.
func BathyElevationCheck(points []photon.Photon, minZ float64) int {
	demoted := 0
	for i := range points {
		p := &points[i]
		if p.Prediction == photon.Bathymetry && p.Z < minZ {
			demote(p)
			demoted++
		}
	}
	return demoted
}

// BathyDepthCheck demotes bathymetry photons that are not far enough below
// the surface estimate. The required depth is depthFactor times the local sea
// surface standard deviation (binned at binSize), capped at MaxDepthBuffer.
// Bathymetry with no surface photons in its bin has nothing to be below and is
// demoted.
func BathyDepthCheck(points []photon.Photon, binSize, depthFactor float64) int {
	if photon.CountPredictions(points, photon.Bathymetry) == 0 {
		return 0
	}

	variance := estimate.QuantizedVariance(points, photon.SeaSurface, binSize)
	demoted := 0
	for i := range points {
		p := &points[i]
		if p.Prediction != photon.Bathymetry {
			continue
		}
		if math.IsNaN(variance[i]) {
			demote(p)
			demoted++
			continue
		}
		buffer := math.Min(depthFactor*math.Sqrt(variance[i]), MaxDepthBuffer)
		// NaN surface estimates fail the comparison and demote.
		if !(p.Z <= p.SurfaceElevation-buffer) {
			demote(p)
			demoted++
		}
	}
	return demoted
}

// SurfaceRangeCheck demotes sea surface photons more than rng metres from
// the surface estimate.
func SurfaceRangeCheck(points []photon.Photon, rng float64) int {
	demoted := 0
	for i := range points {
		p := &points[i]
		if p.Prediction == photon.SeaSurface && math.Abs(p.Z-p.SurfaceElevation) > rng {
			demote(p)
			demoted++
		}
	}
	return demoted
}

// BathyRangeCheck demotes bathymetry photons more than rng metres from the
// bathymetry estimate.
func BathyRangeCheck(points []photon.Photon, rng float64) int {
	demoted := 0
	for i := range points {
		p := &points[i]
		if p.Prediction == photon.Bathymetry && math.Abs(p.Z-p.BathyElevation) > rng {
			demote(p)
			demoted++
		}
	}
	return demoted
}
