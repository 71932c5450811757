// Command blunder reads a classified photon track as CSV on stdin, removes
// misclassified surface and bathymetry photons, and writes the track with
// elevation estimates to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/bathy.report/internal/bathy/pipeline"
	"github.com/banshee-data/bathy.report/internal/config"
	"github.com/banshee-data/bathy.report/internal/db"
	"github.com/banshee-data/bathy.report/internal/monitoring"
	"github.com/banshee-data/bathy.report/internal/photon"
	"github.com/banshee-data/bathy.report/internal/photoncsv"
	"github.com/banshee-data/bathy.report/internal/report"
	"github.com/banshee-data/bathy.report/internal/version"
)

type options struct {
	configPath  string
	verbose     bool
	modelLabels bool
	dbPath      string
	source      string
	plotPath    string
	chartPath   string
	showVersion bool
	tuning      *config.TuningConfig
}

// paramFlags registers the tuning parameter flags on fs with defaults from
// pipeline.DefaultParams. The returned function copies the flags that were
// set explicitly onto t.
func paramFlags(fs *flag.FlagSet) func(t *config.TuningConfig) {
	defaults := pipeline.DefaultParams()
	passes := fs.Int("passes", defaults.Passes, "Number of estimate and detect passes")
	surfMin := fs.Float64("surface-min-elevation", defaults.Blunder.SurfaceMinElevation, "Lowest allowed sea surface elevation (m)")
	surfMax := fs.Float64("surface-max-elevation", defaults.Blunder.SurfaceMaxElevation, "Highest allowed sea surface elevation (m)")
	bathyMin := fs.Float64("bathy-min-elevation", defaults.Blunder.BathyMinElevation, "Lowest allowed bathymetry elevation (m)")
	surfRange := fs.Float64("surface-range", defaults.Blunder.SurfaceRange, "Max distance of sea surface from its estimate (m)")
	bathyRange := fs.Float64("bathy-range", defaults.Blunder.BathyRange, "Max distance of bathymetry from its estimate (m)")
	surfSigma := fs.Float64("surface-sigma", defaults.SurfaceSigma, "Surface profile smoothing sigma (m)")
	bathySigma := fs.Float64("bathy-sigma", defaults.BathySigma, "Bathymetry profile smoothing sigma (m)")
	binSize := fs.Float64("depth-bin-size", defaults.Blunder.SurfaceBinSize, "Along-track bin for surface variance (m)")
	depthFactor := fs.Float64("depth-factor", defaults.Blunder.SurfaceDepthFactor, "Surface standard deviations bathymetry must lie below")
	radius := fs.Float64("isolated-radius", defaults.Blunder.IsolatedBathyRadius, "Isolated bathymetry neighbourhood radius (m)")
	minPhotons := fs.Int("isolated-min-photons", defaults.Blunder.IsolatedBathyMinPhotons, "Photons within radius for dense bathymetry")
	workers := fs.Int("workers", defaults.Blunder.Workers, "Goroutines used for neighbour counting")

	return func(t *config.TuningConfig) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "passes":
				t.PassCount = passes
			case "surface-min-elevation":
				t.SurfaceMinElevation = surfMin
			case "surface-max-elevation":
				t.SurfaceMaxElevation = surfMax
			case "bathy-min-elevation":
				t.BathyMinElevation = bathyMin
			case "surface-range":
				t.SurfaceRange = surfRange
			case "bathy-range":
				t.BathyRange = bathyRange
			case "surface-sigma":
				t.SurfaceSigma = surfSigma
			case "bathy-sigma":
				t.BathySigma = bathySigma
			case "depth-bin-size":
				t.BlunderSurfaceBinSize = binSize
			case "depth-factor":
				t.BlunderSurfaceDepthFactor = depthFactor
			case "isolated-radius":
				t.IsolatedBathyRadius = radius
			case "isolated-min-photons":
				t.IsolatedBathyMinPhotons = minPhotons
			case "workers":
				t.Workers = workers
			}
		})
	}
}

// parseFlags builds options from args. Parameter flags only override the
// loaded config when given explicitly.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("blunder", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Tuning config JSON (defaults built in)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log per-pass and per-check counts")
	fs.BoolVar(&opts.modelLabels, "model-labels", false, "Predictions are 0-based model labels rather than ASPRS classes")
	fs.StringVar(&opts.dbPath, "db", "", "Record the run in this SQLite database")
	fs.StringVar(&opts.source, "source", "stdin", "Source name recorded with the run")
	fs.StringVar(&opts.plotPath, "plot", "", "Write a profile plot (.png, .svg, .pdf)")
	fs.StringVar(&opts.chartPath, "chart", "", "Write an interactive HTML profile chart")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	applyParams := paramFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.showVersion {
		return opts, nil
	}

	if opts.configPath != "" {
		cfg, err := config.LoadTuningConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		opts.tuning = cfg
	} else {
		opts.tuning = config.DefaultTuningConfig()
	}

	t := opts.tuning
	applyParams(t)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	return opts, nil
}

func run(opts *options, stdin io.Reader, stdout io.Writer) error {
	monitoring.SetDebug(opts.verbose)

	readOpts := photoncsv.ReadOptions{}
	if opts.modelLabels {
		readOpts.Labels = photon.DefaultLabelMap()
	}
	points, header, err := photoncsv.Read(stdin, readOpts)
	if err != nil {
		return fmt.Errorf("read photons: %w", err)
	}
	if !header.HasPrediction {
		monitoring.Logf("input has no prediction column; every photon starts unclassified")
	}
	monitoring.Debugf("%d photons read", len(points))

	params := opts.tuning.PipelineParams()
	out, res := pipeline.NewDriver(params).Process(points)

	if err := photoncsv.Write(stdout, out); err != nil {
		return fmt.Errorf("write photons: %w", err)
	}

	if opts.verbose {
		for _, r := range report.Residuals(out) {
			monitoring.Logf("%s residuals: n=%d mean=%.3f std=%.3f max=%.3f", r.Class, r.Count, r.Mean, r.StdDev, r.MaxAbs)
		}
	}
	if opts.plotPath != "" || opts.chartPath != "" {
		if err := writeReports(opts, out); err != nil {
			return err
		}
	}
	if opts.dbPath != "" {
		if err := recordRun(opts, params, res); err != nil {
			return err
		}
	}
	return nil
}

func writeReports(opts *options, points []photon.Photon) error {
	sorted := make([]photon.Photon, len(points))
	copy(sorted, points)
	photon.SortByX(sorted)
	title := filepath.Base(opts.source)

	if opts.plotPath != "" {
		if err := report.ProfilePlot(sorted, title, opts.plotPath); err != nil {
			return err
		}
		monitoring.Debugf("plot written to %s", opts.plotPath)
	}
	if opts.chartPath != "" {
		f, err := os.Create(opts.chartPath)
		if err != nil {
			return fmt.Errorf("create chart: %w", err)
		}
		defer f.Close()
		if err := report.ProfileChart(sorted, title, f); err != nil {
			return err
		}
		monitoring.Debugf("chart written to %s", opts.chartPath)
	}
	return nil
}

func recordRun(opts *options, params pipeline.Params, res pipeline.Result) error {
	database, err := db.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	r, err := db.NewRun(opts.source, config.FromParams(params), res)
	if err != nil {
		return err
	}
	if err := db.NewRunStore(database).Insert(r); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	monitoring.Logf("run %s recorded in %s", r.RunID, opts.dbPath)
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if opts.showVersion {
		fmt.Println(version.String("blunder"))
		return
	}
	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
