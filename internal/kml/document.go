package kml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/logger"
)

// Document is a parsed input KML document.
type Document struct {
	doc *etree.Document
}

// Parse parses KML text. Non-XML input returns domain.ErrInvalidKML.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKML, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrInvalidKML)
	}
	return &Document{doc: doc}, nil
}

// top is the starting frontier for path walks: the document node itself,
// so a root Folder can match the first segment.
func (d *Document) top() []*etree.Element {
	return []*etree.Element{&d.doc.Element}
}

// Folders returns every folder reached by path, in document order.
func (d *Document) Folders(path string) []*etree.Element {
	return resolvePath(d.top(), path)
}

// ExtractPoints returns one record per Placemark under each folder reached
// by each path. Missing paths contribute nothing.
func (d *Document) ExtractPoints(paths ...string) []domain.PointRecord {
	var out []domain.PointRecord
	for _, path := range paths {
		folders := d.Folders(path)
		if len(folders) == 0 {
			logger.Debug("kml: folder path %q not found", path)
			continue
		}
		for _, folder := range folders {
			for _, pm := range selectAll(folder, tagPlacemark) {
				out = append(out, pointRecord(pm))
			}
		}
	}
	return out
}

// ExtractPolygons returns the outer ring of every Placemark under each
// folder reached by each path.
func (d *Document) ExtractPolygons(paths ...string) []domain.PolygonRecord {
	var out []domain.PolygonRecord
	for _, path := range paths {
		folders := d.Folders(path)
		if len(folders) == 0 {
			logger.Debug("kml: folder path %q not found", path)
			continue
		}
		for _, folder := range folders {
			for _, pm := range selectAll(folder, tagPlacemark) {
				ring := strings.TrimSpace(textContent(selectFirst(pm, tagPolygon, tagOuterBound, tagLinearRing, tagCoordinates)))
				out = append(out, domain.PolygonRecord{
					Name:        placemarkName(pm),
					Coordinates: ParseCoordinates(ring),
				})
			}
		}
	}
	return out
}

func placemarkName(pm *etree.Element) string {
	return strings.TrimSpace(textContent(selectFirst(pm, tagName)))
}

func pointRecord(pm *etree.Element) domain.PointRecord {
	coords := strings.TrimSpace(textContent(selectFirst(pm, tagPoint, tagCoordinates)))
	if coords == "" {
		coords = strings.TrimSpace(textContent(selectFirst(pm, tagLineString, tagCoordinates)))
	}

	fields := make(map[string]string)
	for _, sd := range selectAll(pm, tagExtendedData, tagSimpleData) {
		attr := sd.SelectAttr("name")
		if attr == nil || attr.Value == "" {
			continue
		}
		fields[attr.Value] = strings.TrimSpace(textContent(sd))
	}

	return domain.PointRecord{
		Name:        placemarkName(pm),
		Coordinates: ParseCoordinates(coords),
		Fields:      fields,
		Source:      placemarkSnapshot{el: pm.Copy()},
	}
}

// placemarkSnapshot holds a detached copy of a placemark. Serialization
// is deferred until XML is called.
type placemarkSnapshot struct {
	el *etree.Element
}

func (s placemarkSnapshot) XML() (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(s.el.Copy())
	return doc.WriteToString()
}
