package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/bathy.report/internal/photon"
)

var classColors = map[photon.Class]color.RGBA{
	photon.Unclassified: {R: 160, G: 160, B: 160, A: 255},
	photon.SeaSurface:   {R: 31, G: 119, B: 180, A: 255},
	photon.Bathymetry:   {R: 214, G: 39, B: 40, A: 255},
	photon.WaterColumn:  {R: 44, G: 160, B: 44, A: 255},
}

// plotClasses are drawn in this order so sparse classes land on top.
var plotClasses = []photon.Class{photon.Unclassified, photon.WaterColumn, photon.SeaSurface, photon.Bathymetry}

func classXYs(points []photon.Photon, cls photon.Class) plotter.XYs {
	var xys plotter.XYs
	for i := range points {
		if points[i].Prediction == cls {
			xys = append(xys, plotter.XY{X: points[i].X, Y: points[i].Z})
		}
	}
	return xys
}

// estimateXYs returns the defined estimate values, one per along-track
// position.
func estimateXYs(points []photon.Photon, est func(*photon.Photon) float64) plotter.XYs {
	var xys plotter.XYs
	for i := range points {
		v := est(&points[i])
		if !photon.IsDefined(v) {
			continue
		}
		if n := len(xys); n > 0 && xys[n-1].X == points[i].X {
			continue
		}
		xys = append(xys, plotter.XY{X: points[i].X, Y: v})
	}
	return xys
}

// ProfilePlot writes a side view of the track to path: photons coloured by
// prediction, with the surface and bathymetry estimates as lines. points
// must be sorted by X.
func ProfilePlot(points []photon.Photon, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Along-track distance (m)"
	p.Y.Label.Text = "Elevation (m)"
	p.Add(plotter.NewGrid())

	for _, cls := range plotClasses {
		xys := classXYs(points, cls)
		if len(xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("%s scatter: %w", cls, err)
		}
		s.GlyphStyle.Color = classColors[cls]
		s.GlyphStyle.Radius = vg.Points(1)
		p.Add(s)
		p.Legend.Add(cls.String(), s)
	}

	lines := []struct {
		name  string
		est   func(*photon.Photon) float64
		color color.RGBA
	}{
		{"surface estimate", func(p *photon.Photon) float64 { return p.SurfaceElevation }, color.RGBA{R: 0, G: 0, B: 0, A: 255}},
		{"bathy estimate", func(p *photon.Photon) float64 { return p.BathyElevation }, color.RGBA{R: 148, G: 103, B: 189, A: 255}},
	}
	for _, l := range lines {
		xys := estimateXYs(points, l.est)
		if len(xys) < 2 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("%s line: %w", l.name, err)
		}
		line.Color = l.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(l.name, line)
	}
	p.Legend.Top = true

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
