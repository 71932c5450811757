package blunder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/bathy.report/internal/photon"
)

func TestDetect(t *testing.T) {
	var points []photon.Photon
	add := func(x, z float64, cls photon.Class) {
		points = append(points, withEstimates(photon.New(int64(len(points)), x, z, cls), 0, -5))
	}
	for i := 0; i < 100; i++ {
		x := float64(i)
		add(x, 0, photon.SeaSurface)
		add(x+0.5, -5, photon.Bathymetry)
		switch i {
		case 10:
			add(x+0.75, 25, photon.SeaSurface) // above surface_max_elevation
		case 30:
			add(x+0.75, -150, photon.Bathymetry) // below bathy_min_elevation
		case 50:
			add(x+0.75, 0.5, photon.Bathymetry) // above the sea surface
		case 70:
			add(x+0.75, 5, photon.SeaSurface) // far from the surface estimate
		case 90:
			add(x+0.75, -12, photon.Bathymetry) // far from the bathy estimate
		}
	}
	require.True(t, photon.IsSortedByX(points))

	d := NewDetector(DefaultParams())
	s := d.Detect(points)

	assert.Equal(t, Summary{
		SurfaceElevation: 1,
		BathyElevation:   1,
		BathyDepth:       1,
		SurfaceRange:     1,
		BathyRange:       1,
		IsolatedBathy:    0,
	}, s)
	assert.Equal(t, 5, s.Total())
	assert.Equal(t, 100, photon.CountPredictions(points, photon.SeaSurface))
	assert.Equal(t, 100, photon.CountPredictions(points, photon.Bathymetry))
}

func TestDetectEmpty(t *testing.T) {
	d := NewDetector(DefaultParams())
	assert.Equal(t, Summary{}, d.Detect(nil))
}

func TestDetectRequiresSortedInput(t *testing.T) {
	d := NewDetector(DefaultParams())
	points := []photon.Photon{photon.New(0, 5, 0, photon.SeaSurface), photon.New(1, 1, 0, photon.SeaSurface)}
	assert.Panics(t, func() { d.Detect(points) })
}

func TestSummaryAdd(t *testing.T) {
	s := Summary{SurfaceElevation: 1, IsolatedBathy: 2}
	s.Add(Summary{SurfaceElevation: 3, BathyDepth: 4, BathyRange: 1})
	assert.Equal(t, Summary{SurfaceElevation: 4, BathyDepth: 4, BathyRange: 1, IsolatedBathy: 2}, s)
	assert.Equal(t, 11, s.Total())
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
		want   string
	}{
		{"inverted surface bounds", func(p *Params) { p.SurfaceMinElevation = 30 }, "surface_min_elevation"},
		{"negative surface range", func(p *Params) { p.SurfaceRange = -1 }, "surface_range"},
		{"negative bathy range", func(p *Params) { p.BathyRange = -1 }, "bathy_range"},
		{"zero bin", func(p *Params) { p.SurfaceBinSize = 0 }, "blunder_surface_bin_size"},
		{"negative depth factor", func(p *Params) { p.SurfaceDepthFactor = -2 }, "blunder_surface_depth_factor"},
		{"zero radius", func(p *Params) { p.IsolatedBathyRadius = 0 }, "isolated_bathy_radius"},
		{"zero min photons", func(p *Params) { p.IsolatedBathyMinPhotons = 0 }, "isolated_bathy_min_photons"},
		{"zero workers", func(p *Params) { p.Workers = 0 }, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q does not mention %q", err, tt.want)
		})
	}
}
