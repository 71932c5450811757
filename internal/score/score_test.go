package score

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/bathy.report/internal/photon"
)

func TestConfusionMatrix(t *testing.T) {
	var m ConfusionMatrix
	m.Update(true, true)
	m.Update(true, true)
	m.Update(true, false)
	m.Update(false, true)
	m.Update(false, false)
	m.Update(false, false)
	m.Update(false, false)

	assert.Equal(t, ConfusionMatrix{TP: 2, TN: 3, FP: 1, FN: 1}, m)
	assert.Equal(t, int64(3), m.Support())
	assert.Equal(t, int64(7), m.Total())
	assert.InDelta(t, 5.0/7, m.Accuracy(), 1e-12)
	assert.InDelta(t, 4.0/6, m.F1(), 1e-12)
	assert.InDelta(t, (2.0/3+3.0/4)/2, m.BalancedAccuracy(), 1e-12)
}

func TestConfusionMatrixUndefined(t *testing.T) {
	var m ConfusionMatrix
	assert.True(t, math.IsNaN(m.Accuracy()))
	assert.True(t, math.IsNaN(m.F1()))

	m.Update(false, false)
	assert.Equal(t, 1.0, m.Accuracy())
	assert.True(t, math.IsNaN(m.F1()))
	assert.True(t, math.IsNaN(m.BalancedAccuracy()))
}

func labelled(manual, pred []photon.Class) []photon.Photon {
	points := make([]photon.Photon, len(manual))
	for i := range manual {
		points[i] = photon.New(int64(i), float64(i), 0, pred[i])
		points[i].ManualLabel = manual[i]
	}
	return points
}

func TestScoreClass(t *testing.T) {
	b, s, u := photon.Bathymetry, photon.SeaSurface, photon.Unclassified
	points := labelled(
		[]photon.Class{b, b, b, s, u, u},
		[]photon.Class{b, b, u, b, s, u},
	)
	r := ScoreClass(points, b)

	require.Len(t, r.Classes, 2)
	assert.Equal(t, u, r.Classes[0].Class)
	assert.Equal(t, b, r.Classes[1].Class)

	// Sea surface collapses to 0 on both sides.
	assert.Equal(t, ConfusionMatrix{TP: 2, TN: 2, FP: 1, FN: 1}, r.Classes[0].Matrix)
	assert.Equal(t, ConfusionMatrix{TP: 2, TN: 2, FP: 1, FN: 1}, r.Classes[1].Matrix)

	// Both classes have support 3 of 6.
	assert.InDelta(t, 4.0/6, r.WeightedAccuracy, 1e-12)
	assert.InDelta(t, 4.0/6, r.WeightedF1, 1e-12)
	assert.InDelta(t, 4.0/6, r.WeightedBalancedAccuracy, 1e-12)
}

func TestScoreClassSkipsUndefined(t *testing.T) {
	s, u := photon.SeaSurface, photon.Unclassified
	points := labelled([]photon.Class{u, u}, []photon.Class{u, u})
	r := ScoreClass(points, s)

	// Class 41 never appears, so its F1 is undefined and contributes nothing.
	assert.True(t, math.IsNaN(r.Classes[1].Matrix.F1()))
	assert.InDelta(t, 1.0, r.WeightedF1, 1e-12)
	assert.InDelta(t, 1.0, r.WeightedAccuracy, 1e-12)
}

func TestWriteTable(t *testing.T) {
	b, u := photon.Bathymetry, photon.Unclassified
	r := ScoreClass(labelled([]photon.Class{b, u}, []photon.Class{b, u}), b)

	var buf bytes.Buffer
	require.NoError(t, r.WriteTable(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "cls\tacc"), out)
	assert.Contains(t, out, "40\t1.000\t1.000\t1.000\t1\t1\t0\t0\t1\t2")
	assert.Contains(t, out, "weighted_F1 = 1.000")
}
