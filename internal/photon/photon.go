package photon

import (
	"fmt"
	"math"
	"sort"
)

// Class is an ASPRS classification code.
type Class uint16

const (
	Unclassified Class = 0
	Bathymetry   Class = 40
	SeaSurface   Class = 41
	WaterColumn  Class = 45
)

func (c Class) String() string {
	switch c {
	case Unclassified:
		return "unclassified"
	case Bathymetry:
		return "bathymetry"
	case SeaSurface:
		return "sea_surface"
	case WaterColumn:
		return "water_column"
	default:
		return fmt.Sprintf("class_%d", uint16(c))
	}
}

// Photon is one lidar return.
type Photon struct {
	// ID is the stable original-order identifier (ph_index in the ATL03 granule).
	ID int64

	// X is along-track distance in metres.
	X float64

	// Z is the geoid-corrected elevation in metres.
	Z float64

	// ManualLabel is the ground-truth class, used only for scoring.
	ManualLabel Class

	// Prediction is the current predicted class.
	Prediction Class

	// SurfaceElevation and BathyElevation are the smoothed estimates
	// attached by the elevation estimator. NaN means no estimate.
	SurfaceElevation float64
	BathyElevation   float64
}

// New returns a photon with undefined elevation estimates.
func New(id int64, x, z float64, prediction Class) Photon {
	return Photon{
		ID:               id,
		X:                x,
		Z:                z,
		Prediction:       prediction,
		SurfaceElevation: Undefined(),
		BathyElevation:   Undefined(),
	}
}

// Undefined returns the value used for a missing elevation estimate.
func Undefined() float64 { return math.NaN() }

// IsDefined reports whether v holds an estimate.
func IsDefined(v float64) bool { return !math.IsNaN(v) }

// CountPredictions returns the number of photons predicted as cls.
func CountPredictions(points []Photon, cls Class) int {
	n := 0
	for i := range points {
		if points[i].Prediction == cls {
			n++
		}
	}
	return n
}

// CountChanged returns the number of photons whose prediction differs
// between a and b. Both slices must describe the same photons in the same order.
func CountChanged(a, b []Photon) int {
	if len(a) != len(b) {
		panic(fmt.Sprintf("photon: length mismatch %d != %d", len(a), len(b)))
	}
	n := 0
	for i := range a {
		if a[i].Prediction != b[i].Prediction {
			n++
		}
	}
	return n
}

// IsSortedByX reports whether points are in non-decreasing along-track order.
func IsSortedByX(points []Photon) bool {
	for i := 1; i < len(points); i++ {
		if points[i].X < points[i-1].X {
			return false
		}
	}
	return true
}

// MustBeSorted panics unless points are non-empty, have finite X and are
// sorted by X.
func MustBeSorted(points []Photon) {
	if len(points) == 0 {
		panic("photon: empty photon sequence")
	}
	for i := range points {
		if math.IsNaN(points[i].X) || math.IsInf(points[i].X, 0) {
			panic(fmt.Sprintf("photon: along-track distance of photon %d is not finite: %v", points[i].ID, points[i].X))
		}
	}
	if !IsSortedByX(points) {
		panic("photon: photon sequence is not sorted by along-track distance")
	}
}

// SortByX sorts points in place by along-track distance and returns the
// permutation applied: perm[i] is the original index of the photon now at i.
// The sort is stable so photons sharing an X keep their input order.
func SortByX(points []Photon) []int {
	perm := make([]int, len(points))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return points[perm[a]].X < points[perm[b]].X
	})

	sorted := make([]Photon, len(points))
	for i, j := range perm {
		sorted[i] = points[j]
	}
	copy(points, sorted)
	return perm
}

// Restore returns points in their pre-sort order given the permutation
// returned by SortByX.
func Restore(points []Photon, perm []int) []Photon {
	if len(points) != len(perm) {
		panic(fmt.Sprintf("photon: permutation length %d != %d photons", len(perm), len(points)))
	}
	out := make([]Photon, len(points))
	for i, j := range perm {
		out[j] = points[i]
	}
	return out
}
