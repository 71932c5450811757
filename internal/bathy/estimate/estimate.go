package estimate

import (
	"math"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// ProfileBinSize is the along-track bin width, in metres, of elevation profiles.
const ProfileBinSize = 1.0

// Estimate returns a smoothed elevation profile for cls sampled at every
// photon. sigma is the Gaussian standard deviation in metres. When no photon
// is predicted as cls every estimate is NaN.
func Estimate(points []photon.Photon, sigma float64, cls photon.Class) []float64 {
	z := make([]float64, len(points))
	if photon.CountPredictions(points, cls) == 0 {
		for i := range z {
			z[i] = math.NaN()
		}
		return z
	}

	avg := BinnedAverage(points, cls, ProfileBinSize)
	FillGaps(avg)
	avg = Smooth(avg, sigma, SmoothingIterations)

	minX := points[0].X
	for i := range points {
		z[i] = avg[BinIndex(points[i].X, minX, ProfileBinSize)]
	}
	return z
}

// SurfaceEstimates returns the sea surface profile.
func SurfaceEstimates(points []photon.Photon, sigma float64) []float64 {
	return Estimate(points, sigma, photon.SeaSurface)
}

// BathyEstimates returns the seafloor profile.
func BathyEstimates(points []photon.Photon, sigma float64) []float64 {
	return Estimate(points, sigma, photon.Bathymetry)
}
