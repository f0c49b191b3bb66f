// Package file stores kmzmerge settings in ~/.kmzmerge/config.toml.
//
// Dotted keys map onto TOML tables, so "publish.bucket" is written as
// bucket under a [publish] table and hand-edited files read back the same way.
package file
