package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// BOM is the UTF-8 byte order mark written ahead of CSV output for Excel.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes the audit report as comma-separated values.
type CSVWriter struct{}

var _ driven.ReportWriter = (*CSVWriter)(nil)

// NewCSVWriter creates a CSV report writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Format returns domain.ReportCSV.
func (w *CSVWriter) Format() domain.ReportFormat {
	return domain.ReportCSV
}

// Write writes the header and one row per home. Stats are not part of the CSV.
func (w *CSVWriter) Write(ctx context.Context, path string, homes []*domain.EnrichedHome, _ domain.MergeStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(BOM); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, h := range homes {
		if err := cw.Write(homeRow(h)); err != nil {
			return fmt.Errorf("writing report row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}
	return f.Close()
}
