// Package kml reads and writes the KML documents inside planning KMZ files.
//
// Input documents are walked by folder path: a path such as "DISTRIBUSI/HP"
// matches every Folder whose direct name child equals "DISTRIBUSI", then
// every Folder below those named "HP". Placemarks under the final folders
// become domain records.
//
// Output documents are built with a fixed schema, style and folder
// skeleton. Tags are compared by local name so that prefixed elements such
// as kml:Folder are treated like their unprefixed forms.
package kml
