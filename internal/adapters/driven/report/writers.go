package report

import (
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// Writers returns every available report writer keyed by format.
func Writers() map[domain.ReportFormat]driven.ReportWriter {
	return map[domain.ReportFormat]driven.ReportWriter{
		domain.ReportCSV:  NewCSVWriter(),
		domain.ReportXLSX: NewXLSXWriter(),
	}
}
