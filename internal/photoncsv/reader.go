package photoncsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// Column names.
const (
	ColIndex            = "ph_index"
	ColAlongTrack       = "along_track_dist"
	ColElevation        = "geoid_corrected_h"
	ColManualLabel      = "manual_label"
	ColPrediction       = "prediction"
	ColSurfaceElevation = "surface_elevation"
	ColBathyElevation   = "bathy_elevation"
)

// surfaceAliases are accepted in place of ColSurfaceElevation.
var surfaceAliases = []string{ColSurfaceElevation, "sea_surface_h", "sea_surface"}

// ErrMissingColumn is returned when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// ReadOptions controls how rows are interpreted.
type ReadOptions struct {
	// Labels, when set, maps prediction values from model labels to ASPRS
	// classes. Unknown labels are an error.
	Labels *photon.LabelMap

	// RequirePredictions fails the read when the prediction column is absent.
	RequirePredictions bool
}

// Header describes which optional columns were present.
type Header struct {
	HasIndex       bool
	HasManualLabel bool
	HasPrediction  bool
	HasSurface     bool
	HasBathy       bool
}

type columns struct {
	index, x, z, label, pred, surface, bathy int
}

func findColumns(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	lookup := func(names ...string) int {
		for _, n := range names {
			if i, ok := pos[n]; ok {
				return i
			}
		}
		return -1
	}

	c := columns{
		index:   lookup(ColIndex),
		x:       lookup(ColAlongTrack),
		z:       lookup(ColElevation),
		label:   lookup(ColManualLabel),
		pred:    lookup(ColPrediction),
		surface: lookup(surfaceAliases...),
		bathy:   lookup(ColBathyElevation),
	}
	if c.x < 0 {
		return c, fmt.Errorf("%w: %s", ErrMissingColumn, ColAlongTrack)
	}
	if c.z < 0 {
		return c, fmt.Errorf("%w: %s", ErrMissingColumn, ColElevation)
	}
	return c, nil
}

// Read parses a photon track. Rows are returned in file order.
func Read(r io.Reader, opts ReadOptions) ([]photon.Photon, Header, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, Header{}, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := findColumns(head)
	if err != nil {
		return nil, Header{}, err
	}
	h := Header{
		HasIndex:       cols.index >= 0,
		HasManualLabel: cols.label >= 0,
		HasPrediction:  cols.pred >= 0,
		HasSurface:     cols.surface >= 0,
		HasBathy:       cols.bathy >= 0,
	}
	if opts.RequirePredictions && !h.HasPrediction {
		return nil, h, fmt.Errorf("%w: %s", ErrMissingColumn, ColPrediction)
	}

	var points []photon.Photon
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, h, fmt.Errorf("row %d: %w", row+1, err)
		}
		p, err := parseRow(rec, cols, int64(row), opts.Labels)
		if err != nil {
			return nil, h, fmt.Errorf("row %d: %w", row+1, err)
		}
		points = append(points, p)
	}
	return points, h, nil
}

func parseRow(rec []string, c columns, row int64, labels *photon.LabelMap) (photon.Photon, error) {
	var err error
	p := photon.New(row, 0, 0, photon.Unclassified)

	if c.index >= 0 {
		if p.ID, err = parseIndex(rec[c.index]); err != nil {
			return p, fmt.Errorf("%s: %w", ColIndex, err)
		}
	}
	if p.X, err = parseFloat(rec[c.x]); err != nil {
		return p, fmt.Errorf("%s: %w", ColAlongTrack, err)
	}
	if p.Z, err = parseFloat(rec[c.z]); err != nil {
		return p, fmt.Errorf("%s: %w", ColElevation, err)
	}
	if !isFinite(p.X) || !isFinite(p.Z) {
		return p, fmt.Errorf("%s and %s must be set and finite", ColAlongTrack, ColElevation)
	}
	if c.label >= 0 {
		if p.ManualLabel, err = parseClass(rec[c.label]); err != nil {
			return p, fmt.Errorf("%s: %w", ColManualLabel, err)
		}
	}
	if c.pred >= 0 {
		if p.Prediction, err = parseClass(rec[c.pred]); err != nil {
			return p, fmt.Errorf("%s: %w", ColPrediction, err)
		}
		if labels != nil {
			cls, ok := labels.ToASPRS(int(p.Prediction))
			if !ok {
				return p, fmt.Errorf("%s: no ASPRS class for model label %d", ColPrediction, p.Prediction)
			}
			p.Prediction = cls
		}
	}
	if c.surface >= 0 {
		if p.SurfaceElevation, err = parseFloat(rec[c.surface]); err != nil {
			return p, fmt.Errorf("%s: %w", ColSurfaceElevation, err)
		}
	}
	if c.bathy >= 0 {
		if p.BathyElevation, err = parseFloat(rec[c.bathy]); err != nil {
			return p, fmt.Errorf("%s: %w", ColBathyElevation, err)
		}
	}
	return p, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseIndex accepts integers written with a fractional part, as some
// exporters emit ph_index with fixed precision.
func parseIndex(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("non-integer index %q", s)
	}
	return int64(f), nil
}

func parseClass(s string) (photon.Class, error) {
	v, err := parseIndex(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("class %d out of range", v)
	}
	return photon.Class(v), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
