// Package report renders processed photon tracks for inspection.
//
// ProfilePlot writes a static image through gonum/plot; the format follows
// the file extension. ProfileChart writes an interactive go-echarts HTML
// page. Residuals summarises how far each class sits from its estimate.
package report
