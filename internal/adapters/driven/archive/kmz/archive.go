// Package kmz reads and writes KMZ archives: zip files holding a KML
// document.
package kmz

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// Ensure Archive implements the interfaces.
var (
	_ driven.ArchiveReader = (*Archive)(nil)
	_ driven.ArchiveWriter = (*Archive)(nil)
)

// maxEntrySize caps how much of a KML entry is read.
const maxEntrySize = 512 << 20

// Archive handles KMZ files on the local filesystem.
type Archive struct {
	now func() time.Time
}

// New creates a new KMZ archive adapter.
func New() *Archive {
	return &Archive{now: time.Now}
}

// ReadKML returns the first .kml entry in the archive at path.
func (a *Archive) ReadKML(ctx context.Context, path string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("open %s: %w", path, err)
		}
		return nil, "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidArchive, path, err)
	}
	defer reader.Close()

	entry := findKML(&reader.Reader)
	if entry == nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrNoKML, path)
	}

	data, err := readEntry(entry)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidArchive, path, err)
	}
	return data, entry.Name, nil
}

// findKML returns the first non-directory entry with a .kml extension,
// in archive order.
func findKML(r *zip.Reader) *zip.File {
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(f.Name), ".kml") {
			return f
		}
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxEntrySize {
		return nil, fmt.Errorf("entry %s exceeds %d bytes", f.Name, maxEntrySize)
	}
	return data, nil
}

// WriteKMZ writes a single-entry, deflate-compressed archive. The file is
// written next to path and renamed into place.
func (a *Archive) WriteKMZ(ctx context.Context, path, entry string, kml []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".kmzmerge-*.kmz")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := a.writeZip(tmp, entry, kml); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (a *Archive) writeZip(w io.Writer, entry string, kml []byte) error {
	zw := zip.NewWriter(w)
	header := &zip.FileHeader{
		Name:     entry,
		Method:   zip.Deflate,
		Modified: a.now(),
	}
	fw, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", entry, err)
	}
	if _, err := fw.Write(kml); err != nil {
		return fmt.Errorf("write entry %s: %w", entry, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}
