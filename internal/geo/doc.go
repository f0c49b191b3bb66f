// Package geo provides the planar and spherical helpers used for spatial
// conflation: great-circle distance, even-odd point-in-polygon tests,
// bounding boxes and a nearest-neighbour index.
//
// All coordinates are WGS84 degrees. Distances are meters.
package geo
