// Package photon owns the lidar photon record shared by every stage of the
// bathymetry post-processing pipeline.
//
// Responsibilities: the Photon type, ASPRS class codes, the undefined
// elevation convention (NaN), the ASPRS <-> model label table, and the sort
// permutation used to put a track in along-track order and restore it later.
//
// Dependency rule: photon depends on nothing else in this module.
package photon
