package kml

import (
	"fmt"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.KMLCodec  = (*Codec)(nil)
	_ driven.KMLSource = (*Document)(nil)
	_ driven.KMLOutput = (*Output)(nil)
)

// Codec is the etree-backed KML codec.
type Codec struct{}

// NewCodec creates a KML codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Parse parses KML text.
func (c *Codec) Parse(data []byte) (driven.KMLSource, error) {
	return Parse(data)
}

// NewOutput creates an output document with the fixed skeleton.
func (c *Codec) NewOutput() driven.KMLOutput {
	return &Output{Builder: NewBuilder()}
}

// Output adapts Builder to the driven.KMLOutput port.
type Output struct {
	*Builder
}

// CopyPaths copies untouched folders from src.
func (o *Output) CopyPaths(src driven.KMLSource, paths []string) (int, int, error) {
	doc, err := asDocument(src)
	if err != nil {
		return 0, 0, err
	}
	res := o.Builder.CopyPaths(doc, paths)
	return res.Elements, res.Skipped, nil
}

// CopyBoundaryFAT copies the first BOUNDARY FAT folder of src.
func (o *Output) CopyBoundaryFAT(src driven.KMLSource) (int, error) {
	doc, err := asDocument(src)
	if err != nil {
		return 0, err
	}
	return o.Builder.CopyBoundaryFAT(doc), nil
}

func asDocument(src driven.KMLSource) (*Document, error) {
	doc, ok := src.(*Document)
	if !ok {
		return nil, fmt.Errorf("%w: KML source %T", domain.ErrUnsupportedType, src)
	}
	return doc, nil
}
