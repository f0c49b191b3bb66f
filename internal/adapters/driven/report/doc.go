// Package report writes the enrichment audit report that sits next to an
// output KMZ. Each row is one small-alley home-pass with its 19 HOME values
// and the neighbours the conflation engine picked for it.
//
// Two formats are provided:
//
//   - CSV: UTF-8 with a BOM so spreadsheet tools detect the encoding
//   - XLSX: an Excel workbook with a Homes sheet and a Summary sheet
package report
