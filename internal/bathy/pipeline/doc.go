// Package pipeline drives repeated elevation estimation and blunder detection
// over one along-track photon sequence.
//
// A pass estimates the sea surface and seafloor profiles, attaches them to
// every photon, then runs the blunder checks. Later passes see the
// predictions demoted by earlier ones, so the profiles tighten each time.
//
// Process accepts photons in any order and returns them in the same order.
// RunSorted operates in place on a sequence already sorted by X.
//
// Combine merges two prediction sets for the same photons.
package pipeline
