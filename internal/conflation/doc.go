// Package conflation enriches small-alley home-passes with attributes from
// the regular dataset.
//
// For each alley home the engine:
//
//  1. inherits address fields from the nearest regular home-pass,
//  2. takes FAT_CODE from the first FAT boundary containing it,
//  3. links the nearest anchor hook when it is within the hook radius,
//  4. classifies the home as business or residential.
//
// Only the first coordinate of each record takes part in matching. Records
// without coordinates are never candidates, and an alley home without
// coordinates keeps empty fields.
package conflation
