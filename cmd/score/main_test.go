package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/bathy.report/internal/db"
	"github.com/banshee-data/bathy.report/internal/photoncsv"
)

const input = "ph_index,along_track_dist,geoid_corrected_h,manual_label,prediction\n" +
	"0,0,0,41,41\n" +
	"1,1,-5,40,40\n" +
	"2,2,-5,40,0\n" +
	"3,3,-1,0,40\n"

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-class", "40"}, strings.NewReader(input), &out, io.Discard))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "cls"))
	assert.True(t, strings.HasPrefix(lines[1], "0\t"))
	assert.True(t, strings.HasPrefix(lines[2], "40\t"))
	assert.Equal(t, "weighted_accuracy = 0.500", lines[3])
}

func TestRunStoresScore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	run0 := &db.Run{Source: "x"}
	require.NoError(t, db.NewRunStore(database).Insert(run0))
	database.Close()

	args := []string{"-db", dbPath, "-run", run0.RunID}
	require.NoError(t, run(args, strings.NewReader(input), io.Discard, io.Discard))

	database, err = db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()
	scores, err := db.NewScoreStore(database).ListByRun(run0.RunID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 0.5, scores[0].Report.WeightedAccuracy, 1e-12)
}

func TestRunErrors(t *testing.T) {
	err := run([]string{"-db", "x.db"}, strings.NewReader(input), io.Discard, io.Discard)
	assert.Error(t, err)

	err = run(nil, strings.NewReader("along_track_dist,geoid_corrected_h,prediction\n0,0,41\n"), io.Discard, io.Discard)
	assert.True(t, errors.Is(err, photoncsv.ErrMissingColumn))

	err = run([]string{"-class", "-1"}, strings.NewReader(input), io.Discard, io.Discard)
	assert.Error(t, err)
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-version"}, strings.NewReader(""), &out, io.Discard))
	assert.True(t, strings.HasPrefix(out.String(), "score "))
}
