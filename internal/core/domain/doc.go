// Package domain holds the kmzmerge entities and the rules that need no I/O.
//
// Records come out of the KML extractor (PointRecord, PolygonRecord), the
// conflation engine turns small-alley home-passes into EnrichedHome values,
// and a merge is described by MergeRequest, MergeResult and the Run kept in
// history. Settings and the field lists written to the output schemas also
// live here.
//
// The package imports only the standard library; every other package in the
// module may depend on it.
package domain
