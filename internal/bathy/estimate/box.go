package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SmoothingIterations is the number of box filter passes used to approximate
// a Gaussian kernel.
const SmoothingIterations = 4

// FilterWidth returns the odd box width that, applied iterations times,
// approximates a Gaussian of standard deviation sigma.
// See Kovesi, "Fast Almost-Gaussian Filtering".
func FilterWidth(sigma float64, iterations int) int {
	if iterations < 1 {
		panic(fmt.Sprintf("estimate: iterations must be >= 1, got %d", iterations))
	}
	ideal := math.Sqrt(12*sigma*sigma/float64(iterations) + 1)
	half := int(ideal / 2)
	if half < 1 {
		half = 1
	}
	return half*2 + 1
}

func checkWidth(width int) {
	if width < 3 || width%2 == 0 {
		panic(fmt.Sprintf("estimate: box filter width must be odd and >= 3, got %d", width))
	}
}

// boxFilterInto writes the moving average of src into dst. sums is scratch
// space of len(src). Window edges are clamped to the slice bounds, so every
// output averages at least its own input. dst must not alias src.
func boxFilterInto(dst, src, sums []float64, width int) {
	floats.CumSum(sums, src)

	n := len(src)
	half := width / 2
	for i := range dst {
		hi := i + half
		if hi >= n {
			hi = n - 1
		}
		sum := sums[hi]
		total := hi + 1
		if lo := i - half - 1; lo >= 0 {
			sum -= sums[lo]
			total -= lo + 1
		}
		dst[i] = sum / float64(total)
	}
}

// BoxFilter returns the moving average of values over a window of width
// samples centred on each index.
func BoxFilter(values []float64, width int) []float64 {
	checkWidth(width)
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	boxFilterInto(out, values, make([]float64, len(values)), width)
	return out
}

// Smooth applies iterations box filter passes sized for sigma and returns
// the result in a new slice. values is not modified.
func Smooth(values []float64, sigma float64, iterations int) []float64 {
	width := FilterWidth(sigma, iterations)

	front := make([]float64, len(values))
	copy(front, values)
	if len(values) == 0 {
		return front
	}
	back := make([]float64, len(values))
	sums := make([]float64, len(values))
	for i := 0; i < iterations; i++ {
		boxFilterInto(back, front, sums, width)
		front, back = back, front
	}
	return front
}
