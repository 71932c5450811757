package photon

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByXRestoreRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(64)
		original := make([]Photon, n)
		for i := range original {
			// Coarse X values force ties so stability matters.
			original[i] = New(int64(i), float64(rng.Intn(10)), rng.Float64(), Class(rng.Intn(2)*41))
		}

		working := make([]Photon, n)
		copy(working, original)
		perm := SortByX(working)

		require.True(t, IsSortedByX(working), "trial %d not sorted", trial)
		restored := Restore(working, perm)
		for i := range original {
			assert.Equal(t, original[i].ID, restored[i].ID, "trial %d index %d", trial, i)
			assert.Equal(t, original[i].X, restored[i].X)
			assert.Equal(t, original[i].Prediction, restored[i].Prediction)
		}
	}
}

func TestSortByXStable(t *testing.T) {
	points := []Photon{
		New(0, 2, 0, Unclassified),
		New(1, 1, 0, Unclassified),
		New(2, 1, 0, Unclassified),
		New(3, 0, 0, Unclassified),
	}
	perm := SortByX(points)

	assert.Equal(t, []int{3, 1, 2, 0}, perm)
	ids := []int64{points[0].ID, points[1].ID, points[2].ID, points[3].ID}
	assert.Equal(t, []int64{3, 1, 2, 0}, ids)
}

func TestRestorePanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		Restore(make([]Photon, 2), []int{0})
	})
}

func TestMustBeSorted(t *testing.T) {
	assert.Panics(t, func() { MustBeSorted(nil) })
	assert.Panics(t, func() {
		MustBeSorted([]Photon{New(0, 1, 0, 0), New(1, 0, 0, 0)})
	})
	assert.NotPanics(t, func() {
		MustBeSorted([]Photon{New(0, 0, 0, 0), New(1, 0, 0, 0), New(2, 3, 0, 0)})
	})
	assert.PanicsWithValue(t, "photon: along-track distance of photon 1 is not finite: +Inf", func() {
		MustBeSorted([]Photon{New(0, 0, 0, 0), New(1, math.Inf(1), 0, 0)})
	})
	assert.Panics(t, func() {
		MustBeSorted([]Photon{New(0, math.Inf(-1), 0, 0), New(1, 0, 0, 0)})
	})
	assert.Panics(t, func() {
		MustBeSorted([]Photon{New(0, 0, 0, 0), New(1, math.NaN(), 0, 0), New(2, 1, 0, 0)})
	})
}

func TestNewHasUndefinedEstimates(t *testing.T) {
	p := New(7, 1.5, -2.0, SeaSurface)
	if IsDefined(p.SurfaceElevation) || IsDefined(p.BathyElevation) {
		t.Errorf("expected undefined estimates, got %v %v", p.SurfaceElevation, p.BathyElevation)
	}
	if !IsDefined(0) || IsDefined(math.NaN()) {
		t.Error("IsDefined disagrees with NaN convention")
	}
}

func TestCountPredictions(t *testing.T) {
	points := []Photon{
		New(0, 0, 0, SeaSurface),
		New(1, 1, 0, Bathymetry),
		New(2, 2, 0, SeaSurface),
		New(3, 3, 0, Unclassified),
	}
	if got := CountPredictions(points, SeaSurface); got != 2 {
		t.Errorf("CountPredictions(sea_surface) = %d, want 2", got)
	}
	if got := CountPredictions(points, WaterColumn); got != 0 {
		t.Errorf("CountPredictions(water_column) = %d, want 0", got)
	}

	changed := make([]Photon, len(points))
	copy(changed, points)
	changed[1].Prediction = Unclassified
	if got := CountChanged(points, changed); got != 1 {
		t.Errorf("CountChanged = %d, want 1", got)
	}
}

func TestClassString(t *testing.T) {
	tests := []struct {
		c    Class
		want string
	}{
		{Unclassified, "unclassified"},
		{Bathymetry, "bathymetry"},
		{SeaSurface, "sea_surface"},
		{WaterColumn, "water_column"},
		{7, "class_7"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Class(%d).String() = %q, want %q", uint16(tt.c), got, tt.want)
		}
	}
}

func TestDefaultLabelMap(t *testing.T) {
	lm := DefaultLabelMap()

	for _, c := range []Class{Unclassified, SeaSurface, WaterColumn, Bathymetry, 2, 4, 5} {
		label, ok := lm.ToModel(c)
		require.True(t, ok, "class %d missing from forward table", c)
		back, ok := lm.ToASPRS(label)
		require.True(t, ok)
		assert.Equal(t, c, back, "round trip of class %d", c)
	}

	// Noise folds into the unlabeled model class.
	label, ok := lm.ToModel(7)
	require.True(t, ok)
	assert.Equal(t, 0, label)
	back, _ := lm.ToASPRS(label)
	assert.Equal(t, Unclassified, back)

	_, ok = lm.ToASPRS(99)
	assert.False(t, ok)
}

func TestNewLabelMapCopiesTables(t *testing.T) {
	fwd := map[Class]int{SeaSurface: 1}
	rev := map[int]Class{1: SeaSurface}
	lm := NewLabelMap(fwd, rev)
	fwd[SeaSurface] = 9
	delete(rev, 1)

	got, ok := lm.ToModel(SeaSurface)
	assert.True(t, ok)
	assert.Equal(t, 1, got)
	c, ok := lm.ToASPRS(1)
	assert.True(t, ok)
	assert.Equal(t, SeaSurface, c)
}
