package blunder

import (
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// window is an inclusive range of positions in the bathymetry index list.
type window struct {
	lo, hi int
}

// bathyWindows returns, for each bathymetry photon, the span of bathymetry
// photons within radius along track. idx must be ascending in X.
func bathyWindows(points []photon.Photon, idx []int, radius float64) []window {
	windows := make([]window, len(idx))
	lo, hi := 0, 0
	for k, i := range idx {
		x := points[i].X
		for points[idx[lo]].X < x-radius {
			lo++
		}
		if hi < k {
			hi = k
		}
		for hi+1 < len(idx) && points[idx[hi+1]].X <= x+radius {
			hi++
		}
		windows[k] = window{lo: lo, hi: hi}
	}
	return windows
}

func within(a, b *photon.Photon, r2 float64) bool {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx+dz*dz <= r2
}

// countNeighbours fills counts[k] for k in [from, to).
func countNeighbours(points []photon.Photon, idx []int, windows []window, r2 float64, counts []int, from, to int) {
	for k := from; k < to; k++ {
		p := &points[idx[k]]
		n := 0
		for m := windows[k].lo; m <= windows[k].hi; m++ {
			if within(p, &points[idx[m]], r2) {
				n++
			}
		}
		counts[k] = n
	}
}

// FilterIsolatedBathy demotes bathymetry photons that are not part of, or
// within radius of, a dense cluster. A photon is dense when at least
// minPhotons bathymetry photons (itself included) lie within radius in the
// (x, z) plane. All bathymetry is demoted, then every dense photon re-promotes
// the bathymetry photons within radius of it. Windows are computed once,
// before any prediction changes. Neighbour counting is split across up to
// workers goroutines writing disjoint slots.
func FilterIsolatedBathy(points []photon.Photon, radius float64, minPhotons, workers int) int {
	var idx []int
	for i := range points {
		if points[i].Prediction == photon.Bathymetry {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return 0
	}

	r2 := radius * radius
	windows := bathyWindows(points, idx, radius)
	counts := make([]int, len(idx))

	if workers < 1 {
		workers = 1
	}
	chunk := (len(idx) + workers - 1) / workers
	var g errgroup.Group
	for from := 0; from < len(idx); from += chunk {
		from, to := from, min(from+chunk, len(idx))
		g.Go(func() error {
			countNeighbours(points, idx, windows, r2, counts, from, to)
			return nil
		})
	}
	_ = g.Wait()

	for _, i := range idx {
		points[i].Prediction = photon.Unclassified
	}
	for k, i := range idx {
		if counts[k] < minPhotons {
			continue
		}
		for m := windows[k].lo; m <= windows[k].hi; m++ {
			j := idx[m]
			if within(&points[i], &points[j], r2) {
				points[j].Prediction = photon.Bathymetry
			}
		}
	}

	demoted := 0
	for _, i := range idx {
		if points[i].Prediction != photon.Bathymetry {
			demoted++
		}
	}
	return demoted
}
