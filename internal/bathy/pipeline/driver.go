package pipeline

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/bathy.report/internal/bathy/blunder"
	"github.com/banshee-data/bathy.report/internal/bathy/estimate"
	"github.com/banshee-data/bathy.report/internal/monitoring"
	"github.com/banshee-data/bathy.report/internal/photon"
	"github.com/banshee-data/bathy.report/internal/timeutil"
)

// PassSummary describes one estimate-then-detect pass.
type PassSummary struct {
	Pass     int             `json:"pass"`
	Demoted  blunder.Summary `json:"demoted"`
	Surface  int             `json:"surface"`
	Bathy    int             `json:"bathy"`
	Duration time.Duration   `json:"duration_ns"`
}

// Result summarises a Process call.
type Result struct {
	Photons       int           `json:"photons"`
	SurfaceBefore int           `json:"surface_before"`
	SurfaceAfter  int           `json:"surface_after"`
	BathyBefore   int           `json:"bathy_before"`
	BathyAfter    int           `json:"bathy_after"`
	Changed       int           `json:"changed"`
	Passes        []PassSummary `json:"passes"`
}

// Demoted returns the demotion counts summed over all passes.
func (r Result) Demoted() blunder.Summary {
	var s blunder.Summary
	for _, p := range r.Passes {
		s.Add(p.Demoted)
	}
	return s
}

// Driver runs the multi-pass post-processing loop.
type Driver struct {
	Params Params

	// Clock times each pass. Nil uses the wall clock.
	Clock timeutil.Clock
}

// NewDriver returns a Driver using params.
func NewDriver(params Params) *Driver {
	return &Driver{Params: params}
}

// Annotate attaches surface and bathymetry estimates to every photon in
// place. points must be sorted by X. The two profiles are independent and are
// computed concurrently.
func Annotate(points []photon.Photon, surfaceSigma, bathySigma float64) {
	if len(points) == 0 {
		return
	}
	photon.MustBeSorted(points)

	var surface, bathy []float64
	var g errgroup.Group
	g.Go(func() error {
		surface = estimate.SurfaceEstimates(points, surfaceSigma)
		return nil
	})
	g.Go(func() error {
		bathy = estimate.BathyEstimates(points, bathySigma)
		return nil
	})
	_ = g.Wait()

	for i := range points {
		points[i].SurfaceElevation = surface[i]
		points[i].BathyElevation = bathy[i]
	}
}

// RunSorted runs every pass over points in place. points must be sorted by X;
// an empty sequence is left untouched.
func (d *Driver) RunSorted(points []photon.Photon) []PassSummary {
	if len(points) == 0 {
		return nil
	}
	photon.MustBeSorted(points)

	clock := timeutil.OrReal(d.Clock)
	det := blunder.NewDetector(d.Params.Blunder)
	passes := make([]PassSummary, 0, d.Params.Passes)
	for pass := 1; pass <= d.Params.Passes; pass++ {
		start := clock.Now()
		Annotate(points, d.Params.SurfaceSigma, d.Params.BathySigma)
		demoted := det.Detect(points)

		ps := PassSummary{
			Pass:     pass,
			Demoted:  demoted,
			Surface:  photon.CountPredictions(points, photon.SeaSurface),
			Bathy:    photon.CountPredictions(points, photon.Bathymetry),
			Duration: clock.Since(start),
		}
		monitoring.Debugf("pipeline: pass %d demoted=%d surface=%d bathy=%d in %v",
			pass, demoted.Total(), ps.Surface, ps.Bathy, ps.Duration)
		passes = append(passes, ps)
	}
	return passes
}

// Process runs the passes over a copy of points and returns it in the input
// order together with before/after counts.
func (d *Driver) Process(points []photon.Photon) ([]photon.Photon, Result) {
	res := Result{
		Photons:       len(points),
		SurfaceBefore: photon.CountPredictions(points, photon.SeaSurface),
		BathyBefore:   photon.CountPredictions(points, photon.Bathymetry),
	}
	if len(points) == 0 {
		return points, res
	}

	work := make([]photon.Photon, len(points))
	copy(work, points)
	perm := photon.SortByX(work)
	res.Passes = d.RunSorted(work)
	out := photon.Restore(work, perm)

	res.SurfaceAfter = photon.CountPredictions(out, photon.SeaSurface)
	res.BathyAfter = photon.CountPredictions(out, photon.Bathymetry)
	res.Changed = photon.CountChanged(points, out)
	monitoring.Logf("pipeline: %d photons, %d reclassified (surface %d -> %d, bathy %d -> %d)",
		res.Photons, res.Changed, res.SurfaceBefore, res.SurfaceAfter, res.BathyBefore, res.BathyAfter)
	return out, res
}
