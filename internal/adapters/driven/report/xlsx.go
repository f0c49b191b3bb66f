package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// Sheet names in the workbook.
const (
	SheetHomes   = "Homes"
	SheetSummary = "Summary"
)

// XLSXWriter writes the audit report as an Excel workbook.
type XLSXWriter struct{}

var _ driven.ReportWriter = (*XLSXWriter)(nil)

// NewXLSXWriter creates an XLSX report writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Format returns domain.ReportXLSX.
func (w *XLSXWriter) Format() domain.ReportFormat {
	return domain.ReportXLSX
}

// Write builds a Homes sheet (one row per home) and a Summary sheet (run stats).
func (w *XLSXWriter) Write(ctx context.Context, path string, homes []*domain.EnrichedHome, stats domain.MergeStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetHomes); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	cols := Columns()
	if err := setRow(f, SheetHomes, 1, toAny(cols)); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetHomes, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetPanes(SheetHomes, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	for i, h := range homes {
		if err := setRow(f, SheetHomes, i+2, toAny(homeRow(h))); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	for i, kv := range statsRows(stats) {
		if err := setRow(f, SheetSummary, i+1, []any{kv[0], kv[1]}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 28); err != nil {
		return fmt.Errorf("sizing summary: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
