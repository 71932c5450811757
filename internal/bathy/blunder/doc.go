// Package blunder reclassifies photons whose predicted class is inconsistent
// with the estimated sea surface and seafloor profiles.
//
// A Detector applies six checks in a fixed order, each demoting offending
// sea surface or bathymetry predictions to unclassified:
//
//  1. sea surface elevation bounds
//  2. bathymetry minimum elevation
//  3. bathymetry depth below the local surface (surface variance buffer)
//  4. sea surface distance from the surface estimate
//  5. bathymetry distance from the bathymetry estimate
//  6. isolated bathymetry density filter
//
// Later checks see the demotions made by earlier ones. Every check mutates
// the photon slice in place and reports how many photons it demoted. Input
// must be sorted by along-track distance; violations panic.
package blunder
