package blunder

import "github.com/banshee-data/bathy.report/internal/photon"

// NearestWithClass returns, for every photon, the index of the along-track
// nearest photon predicted as cls. Photons before the first occurrence map to
// it, photons after the last map to the last, and equidistant neighbours
// resolve to the earlier one. When no photon carries cls every entry is
// len(points), which callers must check before indexing.
func NearestWithClass(points []photon.Photon, cls photon.Class) []int {
	n := len(points)
	out := make([]int, n)

	scan := func(from int) int {
		for j := from; j < n; j++ {
			if points[j].Prediction == cls {
				return j
			}
		}
		return n
	}

	prev, next := -1, scan(0)
	if next == n {
		for i := range out {
			out[i] = n
		}
		return out
	}

	for i := range points {
		if next < i {
			prev = next
			next = scan(i)
		}
		switch {
		case next == i:
			out[i] = i
		case prev < 0:
			out[i] = next
		case next == n:
			out[i] = prev
		case points[i].X-points[prev].X <= points[next].X-points[i].X:
			out[i] = prev
		default:
			out[i] = next
		}
	}
	return out
}
