package estimate

import (
	"fmt"
	"math"
)

// Run is a block of consecutive NaN values bounded by Left and Right. The
// interior (Left, Right) is exclusive. A leading run has Left == 0 with
// values[0] itself undefined; a trailing run has Right == len-1 with the last
// value undefined. Edge runs are filled by flat extrapolation.
type Run struct {
	Left  int
	Right int
}

// FindUndefinedRuns returns every maximal run of NaN values in order.
// At least one value must be defined.
func FindUndefinedRuns(values []float64) []Run {
	n := len(values)
	first := -1
	for i, v := range values {
		if !math.IsNaN(v) {
			first = i
			break
		}
	}
	if first < 0 {
		panic(fmt.Sprintf("estimate: no defined values among %d to interpolate from", n))
	}

	var runs []Run
	if first > 0 {
		runs = append(runs, Run{Left: 0, Right: first})
	}
	for i := first; i < n-1; {
		if !math.IsNaN(values[i+1]) {
			i++
			continue
		}
		j := i + 2
		for j < n && math.IsNaN(values[j]) {
			j++
		}
		if j == n {
			j = n - 1
		}
		runs = append(runs, Run{Left: i, Right: j})
		i = j
	}
	return runs
}

// Interpolate fills the interior of run in place.
func Interpolate(values []float64, run Run) {
	if run.Left < 0 || run.Right >= len(values) || run.Left >= run.Right {
		panic(fmt.Sprintf("estimate: invalid run [%d,%d] for %d values", run.Left, run.Right, len(values)))
	}

	left := values[run.Left]
	right := values[run.Right]
	if math.IsNaN(left) {
		if run.Left != 0 || math.IsNaN(right) {
			panic(fmt.Sprintf("estimate: run [%d,%d] has no defined neighbour", run.Left, run.Right))
		}
		left = right
		values[0] = right
	}
	if math.IsNaN(right) {
		if run.Right != len(values)-1 {
			panic(fmt.Sprintf("estimate: run [%d,%d] has no defined right neighbour", run.Left, run.Right))
		}
		right = left
		values[run.Right] = left
	}

	span := float64(run.Right - run.Left)
	for k := run.Left + 1; k < run.Right; k++ {
		w := float64(k-run.Left) / span
		values[k] = (1-w)*left + w*right
	}
}

// FillGaps interpolates every undefined run in place.
func FillGaps(values []float64) {
	for _, r := range FindUndefinedRuns(values) {
		Interpolate(values, r)
	}
}
