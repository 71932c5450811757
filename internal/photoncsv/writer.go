package photoncsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// header is the column order written by Write.
var header = []string{
	ColIndex, ColAlongTrack, ColElevation, ColManualLabel,
	ColPrediction, ColSurfaceElevation, ColBathyElevation,
}

// formatFloat writes v with prec decimals, and NaN as "nan".
func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Write emits points with the full column set. Along-track distance keeps 15
// decimals; elevations keep 8, the precision of the geoid correction.
func Write(w io.Writer, points []photon.Photon) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	rec := make([]string, len(header))
	for i := range points {
		p := &points[i]
		rec[0] = strconv.FormatInt(p.ID, 10)
		rec[1] = formatFloat(p.X, 15)
		rec[2] = formatFloat(p.Z, 8)
		rec[3] = strconv.Itoa(int(p.ManualLabel))
		rec[4] = strconv.Itoa(int(p.Prediction))
		rec[5] = formatFloat(p.SurfaceElevation, 8)
		rec[6] = formatFloat(p.BathyElevation, 8)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
