// Command score compares the predictions in a photon CSV on stdin against its
// manual labels for one class and prints a confusion table.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/bathy.report/internal/db"
	"github.com/banshee-data/bathy.report/internal/monitoring"
	"github.com/banshee-data/bathy.report/internal/photon"
	"github.com/banshee-data/bathy.report/internal/photoncsv"
	"github.com/banshee-data/bathy.report/internal/score"
	"github.com/banshee-data/bathy.report/internal/version"
)

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cls := fs.Int("class", int(photon.Bathymetry), "ASPRS class to score")
	verbose := fs.Bool("verbose", false, "Log progress")
	dbPath := fs.String("db", "", "Store the report in this SQLite database")
	runID := fs.String("run", "", "Run ID the report belongs to (requires -db)")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		_, err := fmt.Fprintln(stdout, version.String("score"))
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *cls < 0 || *cls > 0xffff {
		return fmt.Errorf("class %d out of range", *cls)
	}
	if (*dbPath == "") != (*runID == "") {
		return errors.New("-db and -run must be given together")
	}
	monitoring.SetDebug(*verbose)

	points, h, err := photoncsv.Read(stdin, photoncsv.ReadOptions{RequirePredictions: true})
	if err != nil {
		return fmt.Errorf("read photons: %w", err)
	}
	if !h.HasManualLabel {
		return fmt.Errorf("%w: %s", photoncsv.ErrMissingColumn, photoncsv.ColManualLabel)
	}
	monitoring.Debugf("%d points read", len(points))

	rep := score.ScoreClass(points, photon.Class(*cls))
	if err := rep.WriteTable(stdout); err != nil {
		return err
	}

	if *dbPath != "" {
		database, err := db.Open(*dbPath)
		if err != nil {
			return err
		}
		defer database.Close()
		id, err := db.NewScoreStore(database).Insert(*runID, rep)
		if err != nil {
			return err
		}
		monitoring.Debugf("score %s stored for run %s", id, *runID)
	}
	return nil
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}
