package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/bathy.report/internal/photon"
)

// maxChartPoints bounds the photons drawn per series; denser series are
// strided.
const maxChartPoints = 20000

func stride(n int) int {
	if n <= maxChartPoints {
		return 1
	}
	return (n + maxChartPoints - 1) / maxChartPoints
}

// ProfileChart renders an interactive side view of the track as HTML.
func ProfileChart(points []photon.Photon, title string, w io.Writer) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1400px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("photons=%d", len(points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Along-track (m)", NameLocation: "middle", NameGap: 25, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Elevation (m)", NameLocation: "middle", NameGap: 30, Type: "value"}),
	)

	for _, cls := range plotClasses {
		xys := classXYs(points, cls)
		if len(xys) == 0 {
			continue
		}
		step := stride(len(xys))
		data := make([]opts.ScatterData, 0, len(xys)/step+1)
		for i := 0; i < len(xys); i += step {
			data = append(data, opts.ScatterData{Value: []interface{}{xys[i].X, xys[i].Y}})
		}
		scatter.AddSeries(cls.String(), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	}

	for _, e := range []struct {
		name string
		est  func(*photon.Photon) float64
	}{
		{"surface estimate", func(p *photon.Photon) float64 { return p.SurfaceElevation }},
		{"bathy estimate", func(p *photon.Photon) float64 { return p.BathyElevation }},
	} {
		xys := estimateXYs(points, e.est)
		if len(xys) == 0 {
			continue
		}
		step := stride(len(xys))
		data := make([]opts.ScatterData, 0, len(xys)/step+1)
		for i := 0; i < len(xys); i += step {
			data = append(data, opts.ScatterData{Value: []interface{}{xys[i].X, xys[i].Y}})
		}
		scatter.AddSeries(e.name, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 1}))
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
