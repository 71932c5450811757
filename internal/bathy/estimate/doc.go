// Package estimate derives smooth expected elevation profiles from noisy
// per-photon class predictions.
//
// The profile for a class is built in four steps: per-bin averages along
// track (WindowStats), linear interpolation across empty bins (GapFiller),
// iterated cumulative-sum box filtering approximating a Gaussian (BoxSmoother),
// and finally broadcasting each smoothed bin back onto the photons in it.
//
// Everything here is a pure function over in-memory slices. Results are
// bit-reproducible for a given input order and sigma: accumulation order
// within a bin or window is always sequential.
//
// Precondition violations (empty input, unsorted X, non-positive bin size,
// even filter width) panic. Missing data is not an error and propagates as NaN.
package estimate
