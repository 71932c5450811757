package estimate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFindUndefinedRuns(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		values []float64
		want   []Run
	}{
		{"no gaps", []float64{1, 2, 3}, nil},
		{"single", []float64{4}, nil},
		{"edges", []float64{nan, 1, nan}, []Run{{0, 1}, {1, 2}}},
		{"interior", []float64{1, nan, nan, 4}, []Run{{0, 3}}},
		{"mixed", []float64{nan, nan, 1, nan, 3, nan}, []Run{{0, 2}, {2, 4}, {4, 5}}},
		{"trailing only", []float64{1, 2, nan, nan}, []Run{{1, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindUndefinedRuns(tt.values)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("runs mismatch (-want +got):\n%s", diff)
			}
			for _, r := range got {
				if r.Left >= r.Right {
					t.Errorf("run %+v violates left < right", r)
				}
			}
		})
	}
}

func TestFillGaps(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{"flat extrapolation at both edges", []float64{nan, 1, nan}, []float64{1, 1, 1}},
		{"exact linear ramp", []float64{1, nan, nan, 4}, []float64{1, 2, 3, 4}},
		{"two interior runs", []float64{0, nan, 2, nan, nan, 5}, []float64{0, 1, 2, 3, 4, 5}},
		{"mixed", []float64{nan, nan, 1, nan, 3, nan}, []float64{1, 1, 1, 2, 3, 3}},
		{"leading pair", []float64{nan, 5}, []float64{5, 5}},
		{"trailing pair", []float64{5, nan}, []float64{5, 5}},
		{"nothing to do", []float64{3, 2, 1}, []float64{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			FillGaps(tt.values)
			if diff := cmp.Diff(tt.want, tt.values, nanEqual); diff != "" {
				t.Errorf("FillGaps mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFillGapsRequiresDefinedValue(t *testing.T) {
	assert.Panics(t, func() { FillGaps([]float64{math.NaN(), math.NaN()}) })
	assert.Panics(t, func() { FillGaps([]float64{math.NaN()}) })
}

func TestInterpolateRejectsBadRun(t *testing.T) {
	values := []float64{1, math.NaN(), 3}
	assert.Panics(t, func() { Interpolate(values, Run{Left: 2, Right: 2}) })
	assert.Panics(t, func() { Interpolate(values, Run{Left: 0, Right: 3}) })
	assert.Panics(t, func() { Interpolate([]float64{1, math.NaN(), math.NaN(), 2}, Run{Left: 1, Right: 3}) })
}
