package pipeline

import (
	"errors"
	"fmt"

	"github.com/banshee-data/bathy.report/internal/photon"
)

var (
	// ErrLengthMismatch is returned when two prediction sets differ in size.
	ErrLengthMismatch = errors.New("prediction sets differ in length")

	// ErrIDMismatch is returned when two prediction sets disagree on photon
	// identity at some position.
	ErrIDMismatch = errors.New("prediction sets describe different photons")
)

// Combine merges two prediction sets for the same photons. The result is a
// copy of primary where every unclassified prediction is replaced by the
// secondary prediction. Estimates are cleared since they no longer match the
// merged predictions.
func Combine(primary, secondary []photon.Photon) ([]photon.Photon, error) {
	if len(primary) != len(secondary) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(primary), len(secondary))
	}
	out := make([]photon.Photon, len(primary))
	for i := range primary {
		if primary[i].ID != secondary[i].ID {
			return nil, fmt.Errorf("%w: row %d has ph_index %d and %d",
				ErrIDMismatch, i, primary[i].ID, secondary[i].ID)
		}
		out[i] = primary[i]
		if out[i].Prediction == photon.Unclassified {
			out[i].Prediction = secondary[i].Prediction
		}
		out[i].SurfaceElevation = photon.Undefined()
		out[i].BathyElevation = photon.Undefined()
	}
	return out, nil
}
