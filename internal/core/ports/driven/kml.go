package driven

import "github.com/custodia-labs/kmzmerge/internal/core/domain"

// KMLSource is a parsed input document.
type KMLSource interface {
	// ExtractPoints returns point and line placemarks under the given
	// folder paths. Missing paths yield nothing.
	ExtractPoints(paths ...string) []domain.PointRecord

	// ExtractPolygons returns polygon outer rings under the given folder paths.
	ExtractPolygons(paths ...string) []domain.PolygonRecord
}

// KMLOutput is the output document under construction.
type KMLOutput interface {
	// AddHome places an enriched home in HOME or HOME-BIZ.
	AddHome(home *domain.EnrichedHome)

	// AddHook places an anchor hook in the HOOK folder.
	AddHook(hook *domain.PointRecord)

	// CopyPaths copies untouched folders from src.
	// Returns the number of elements copied and paths skipped.
	CopyPaths(src KMLSource, paths []string) (copied, skipped int, err error)

	// CopyBoundaryFAT copies the first BOUNDARY FAT folder of src.
	CopyBoundaryFAT(src KMLSource) (copied int, err error)

	// Bytes serializes the document.
	Bytes() ([]byte, error)
}

// KMLCodec parses input documents and creates output documents.
type KMLCodec interface {
	// Parse parses KML text. Returns domain.ErrInvalidKML for non-XML input.
	Parse(data []byte) (KMLSource, error)

	// NewOutput creates an output document with the fixed skeleton.
	NewOutput() KMLOutput
}
