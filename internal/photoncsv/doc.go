// Package photoncsv reads and writes photon tracks as CSV.
//
// Input is header driven: along_track_dist and geoid_corrected_h are
// required; ph_index, manual_label, prediction, surface_elevation (or
// sea_surface_h) and bathy_elevation are optional. Output always carries the
// full column set in a fixed order.
package photoncsv
