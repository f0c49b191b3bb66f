package driven

import "context"

// ArchiveReader extracts the KML document from a KMZ archive.
type ArchiveReader interface {
	// ReadKML returns the content and entry name of the first .kml entry.
	// Returns domain.ErrInvalidArchive if the file is not a zip archive and
	// domain.ErrNoKML if it holds no .kml entry.
	ReadKML(ctx context.Context, path string) (data []byte, entry string, err error)
}

// ArchiveWriter packs a KML document into a KMZ archive.
type ArchiveWriter interface {
	// WriteKMZ writes a deflate-compressed archive at path holding a single
	// entry. Existing files are replaced.
	WriteKMZ(ctx context.Context, path, entry string, kml []byte) error
}
