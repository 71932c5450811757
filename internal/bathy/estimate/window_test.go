package estimate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/banshee-data/bathy.report/internal/photon"
)

var nanEqual = cmp.Options{cmpopts.EquateNaNs(), cmpopts.EquateApprox(0, 1e-12)}

func windowFixture() []photon.Photon {
	return []photon.Photon{
		photon.New(0, 0.0, 1, photon.SeaSurface),
		photon.New(1, 0.5, 3, photon.SeaSurface),
		photon.New(2, 1.2, 5, photon.Bathymetry),
		photon.New(3, 2.9, 2, photon.SeaSurface),
		photon.New(4, 3.0, 4, photon.SeaSurface),
	}
}

func TestBinIndex(t *testing.T) {
	tests := []struct {
		x, minX, size float64
		want          int
	}{
		{0, 0, 1, 0},
		{0.999, 0, 1, 0},
		{1, 0, 1, 1},
		{105.5, 100, 30, 0},
		{130, 100, 30, 1},
		{-3.5, -4, 0.25, 2},
	}
	for _, tt := range tests {
		if got := BinIndex(tt.x, tt.minX, tt.size); got != tt.want {
			t.Errorf("BinIndex(%v, %v, %v) = %d, want %d", tt.x, tt.minX, tt.size, got, tt.want)
		}
	}
}

func TestBinnedAverage(t *testing.T) {
	got := BinnedAverage(windowFixture(), photon.SeaSurface, 1)
	want := []float64{2, math.NaN(), 2, 4}
	if diff := cmp.Diff(want, got, nanEqual); diff != "" {
		t.Errorf("BinnedAverage mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantizedAverageParallelToInput(t *testing.T) {
	points := windowFixture()

	got := QuantizedAverage(points, photon.SeaSurface, 1)
	want := []float64{2, 2, math.NaN(), 2, 4}
	if diff := cmp.Diff(want, got, nanEqual); diff != "" {
		t.Errorf("1m QuantizedAverage mismatch (-want +got):\n%s", diff)
	}

	got = QuantizedAverage(points, photon.SeaSurface, 2)
	want = []float64{2, 2, 2, 3, 3}
	if diff := cmp.Diff(want, got, nanEqual); diff != "" {
		t.Errorf("2m QuantizedAverage mismatch (-want +got):\n%s", diff)
	}

	got = QuantizedAverage(points, photon.Bathymetry, 1)
	want = []float64{math.NaN(), math.NaN(), 5, math.NaN(), math.NaN()}
	if diff := cmp.Diff(want, got, nanEqual); diff != "" {
		t.Errorf("bathy QuantizedAverage mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantizedVariance(t *testing.T) {
	points := windowFixture()

	got := QuantizedVariance(points, photon.SeaSurface, 1)
	want := []float64{1, 1, math.NaN(), 0, 0}
	if diff := cmp.Diff(want, got, nanEqual); diff != "" {
		t.Errorf("1m QuantizedVariance mismatch (-want +got):\n%s", diff)
	}

	got = QuantizedVariance(points, photon.SeaSurface, 2)
	want = []float64{1, 1, 1, 1, 1}
	if diff := cmp.Diff(want, got, nanEqual); diff != "" {
		t.Errorf("2m QuantizedVariance mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantizedVarianceNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	levels := []float64{0.1, 0.7, -3.3, 1e6 + 0.1, 123456.789, -0.3}

	for _, level := range levels {
		var points []photon.Photon
		for bin := 0; bin < 50; bin++ {
			members := 1 + rng.Intn(9)
			for k := 0; k < members; k++ {
				x := float64(bin) + float64(k)/float64(members+1)
				points = append(points, photon.New(int64(len(points)), x, level, photon.SeaSurface))
			}
		}

		for i, v := range QuantizedVariance(points, photon.SeaSurface, 1) {
			if v < 0 {
				t.Fatalf("level %v photon %d: variance %g < 0", level, i, v)
			}
			if v > 1e-9*level*level+1e-12 {
				t.Errorf("level %v photon %d: constant bin variance %g", level, i, v)
			}
		}
	}
}

func TestWindowStatsPreconditions(t *testing.T) {
	tests := []struct {
		name   string
		points []photon.Photon
		size   float64
	}{
		{"empty", nil, 1},
		{"unsorted", []photon.Photon{photon.New(0, 2, 0, photon.SeaSurface), photon.New(1, 1, 0, photon.SeaSurface)}, 1},
		{"zero bin", windowFixture(), 0},
		{"nan bin", windowFixture(), math.NaN()},
		{"infinite x", []photon.Photon{photon.New(0, 0, 0, photon.SeaSurface), photon.New(1, math.Inf(1), 0, photon.SeaSurface)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			QuantizedVariance(tt.points, photon.SeaSurface, tt.size)
		})
	}
}
