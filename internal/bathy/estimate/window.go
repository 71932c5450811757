package estimate

import (
	"fmt"
	"math"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// BinIndex returns the along-track bin holding x for bins of width binSize
// starting at minX.
func BinIndex(x, minX, binSize float64) int {
	return int(math.Floor((x - minX) / binSize))
}

// binAccumulator holds per-bin running sums for one class.
type binAccumulator struct {
	minX    float64
	binSize float64
	sums    []float64
	sumsSq  []float64
	counts  []int
}

func accumulate(points []photon.Photon, cls photon.Class, binSize float64) *binAccumulator {
	photon.MustBeSorted(points)
	if !(binSize > 0) {
		panic(fmt.Sprintf("estimate: bin size must be positive, got %v", binSize))
	}

	minX := points[0].X
	bins := BinIndex(points[len(points)-1].X, minX, binSize) + 1
	acc := &binAccumulator{
		minX:    minX,
		binSize: binSize,
		sums:    make([]float64, bins),
		sumsSq:  make([]float64, bins),
		counts:  make([]int, bins),
	}
	for i := range points {
		if points[i].Prediction != cls {
			continue
		}
		j := BinIndex(points[i].X, minX, binSize)
		z := points[i].Z
		acc.sums[j] += z
		acc.sumsSq[j] += z * z
		acc.counts[j]++
	}
	return acc
}

func (a *binAccumulator) mean(j int) float64 {
	if a.counts[j] == 0 {
		return math.NaN()
	}
	return a.sums[j] / float64(a.counts[j])
}

func (a *binAccumulator) variance(j int) float64 {
	if a.counts[j] == 0 {
		return math.NaN()
	}
	n := float64(a.counts[j])
	m := a.sums[j] / n
	v := a.sumsSq[j]/n - m*m
	// E[z²]-E[z]² can dip just below zero from rounding.
	if v < 0 {
		return 0
	}
	return v
}

// BinnedAverage returns the mean elevation of cls photons in each along-track
// bin, indexed by bin. Bins without cls photons are NaN.
func BinnedAverage(points []photon.Photon, cls photon.Class, binSize float64) []float64 {
	acc := accumulate(points, cls, binSize)
	avg := make([]float64, len(acc.counts))
	for j := range avg {
		avg[j] = acc.mean(j)
	}
	return avg
}

// QuantizedAverage returns, for every photon, the mean elevation of cls
// photons sharing its bin. The result is parallel to points.
func QuantizedAverage(points []photon.Photon, cls photon.Class, binSize float64) []float64 {
	acc := accumulate(points, cls, binSize)
	out := make([]float64, len(points))
	for i := range points {
		out[i] = acc.mean(BinIndex(points[i].X, acc.minX, binSize))
	}
	return out
}

// QuantizedVariance returns, for every photon, the elevation variance of cls
// photons sharing its bin. Values are never negative; empty bins are NaN.
func QuantizedVariance(points []photon.Photon, cls photon.Class, binSize float64) []float64 {
	acc := accumulate(points, cls, binSize)
	out := make([]float64, len(points))
	for i := range points {
		out[i] = acc.variance(BinIndex(points[i].X, acc.minX, binSize))
	}
	return out
}
