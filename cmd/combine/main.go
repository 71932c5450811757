// Command combine merges two prediction files for the same photons. Photons
// the first file leaves unclassified take the second file's prediction. The
// merged track is written to stdout with fresh elevation estimates.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/bathy.report/internal/bathy/pipeline"
	"github.com/banshee-data/bathy.report/internal/config"
	"github.com/banshee-data/bathy.report/internal/monitoring"
	"github.com/banshee-data/bathy.report/internal/photon"
	"github.com/banshee-data/bathy.report/internal/photoncsv"
	"github.com/banshee-data/bathy.report/internal/version"
)

const usage = "usage: combine [options] input1.csv input2.csv > output.csv"

func readPredictions(path string) ([]photon.Photon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: could not open file for reading: %w", path, err)
	}
	defer f.Close()

	points, _, err := photoncsv.Read(f, photoncsv.ReadOptions{RequirePredictions: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	monitoring.Debugf("%d points read from %s", len(points), path)
	return points, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("combine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("verbose", false, "Log progress")
	configPath := fs.String("config", "", "Tuning config JSON for the smoothing sigmas")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		_, err := fmt.Fprintln(stdout, version.String("combine"))
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("expected two input files")
	}
	monitoring.SetDebug(*verbose)

	tuning := config.DefaultTuningConfig()
	if *configPath != "" {
		cfg, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			return err
		}
		tuning = cfg
	}

	p1, err := readPredictions(fs.Arg(0))
	if err != nil {
		return err
	}
	p2, err := readPredictions(fs.Arg(1))
	if err != nil {
		return err
	}

	merged, err := pipeline.Combine(p1, p2)
	if err != nil {
		return err
	}

	if len(merged) > 0 {
		perm := photon.SortByX(merged)
		pipeline.Annotate(merged, tuning.GetSurfaceSigma(), tuning.GetBathySigma())
		merged = photon.Restore(merged, perm)
	}
	return photoncsv.Write(stdout, merged)
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}
