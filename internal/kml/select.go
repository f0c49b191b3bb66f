package kml

import (
	"strings"

	"github.com/beevik/etree"
)

const (
	tagFolder       = "Folder"
	tagName         = "name"
	tagPlacemark    = "Placemark"
	tagCoordinates  = "coordinates"
	tagPoint        = "Point"
	tagLineString   = "LineString"
	tagPolygon      = "Polygon"
	tagOuterBound   = "outerBoundaryIs"
	tagLinearRing   = "LinearRing"
	tagExtendedData = "ExtendedData"
	tagSimpleData   = "SimpleData"
)

// walk calls fn for every element below scope in document order.
// Returning false from fn stops the walk.
func walk(scope *etree.Element, fn func(*etree.Element) bool) bool {
	for _, child := range scope.ChildElements() {
		if !fn(child) {
			return false
		}
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

// matches reports whether e has tag chain[len-1] and ancestors, strictly
// below scope, carrying the preceding tags in order.
func matches(scope, e *etree.Element, chain []string) bool {
	last := len(chain) - 1
	if e.Tag != chain[last] {
		return false
	}
	want := last - 1
	for p := e.Parent(); want >= 0 && p != nil && p != scope; p = p.Parent() {
		if p.Tag == chain[want] {
			want--
		}
	}
	return want < 0
}

// selectAll returns every element below scope matching the descendant
// chain, in document order.
func selectAll(scope *etree.Element, chain ...string) []*etree.Element {
	var out []*etree.Element
	walk(scope, func(e *etree.Element) bool {
		if matches(scope, e, chain) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// selectFirst returns the first element below scope matching the chain.
func selectFirst(scope *etree.Element, chain ...string) *etree.Element {
	var found *etree.Element
	walk(scope, func(e *etree.Element) bool {
		if matches(scope, e, chain) {
			found = e
			return false
		}
		return true
	})
	return found
}

// textContent concatenates all character data below e.
func textContent(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	var collect func(*etree.Element)
	collect = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				collect(t)
			}
		}
	}
	collect(e)
	return sb.String()
}

// isNamedFolder reports whether f is a Folder with a direct name child
// whose trimmed text equals name.
func isNamedFolder(f *etree.Element, name string) bool {
	if f.Tag != tagFolder {
		return false
	}
	for _, c := range f.ChildElements() {
		if c.Tag == tagName && strings.TrimSpace(textContent(c)) == name {
			return true
		}
	}
	return false
}

// namedFolders returns every Folder below scope named name.
func namedFolders(scope *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	walk(scope, func(e *etree.Element) bool {
		if isNamedFolder(e, name) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// firstNamedFolder returns the first Folder below scope named name, or nil.
func firstNamedFolder(scope *etree.Element, name string) *etree.Element {
	var found *etree.Element
	walk(scope, func(e *etree.Element) bool {
		if isNamedFolder(e, name) {
			found = e
			return false
		}
		return true
	})
	return found
}

// splitPath splits a '/'-delimited folder path.
func splitPath(path string) []string {
	return strings.Split(path, "/")
}

// resolvePath walks path from the given frontier. Every matching folder
// under every frontier node is kept, so nested matches may repeat.
func resolvePath(frontier []*etree.Element, path string) []*etree.Element {
	for _, segment := range splitPath(path) {
		var next []*etree.Element
		for _, node := range frontier {
			next = append(next, namedFolders(node, segment)...)
		}
		frontier = next
		if len(frontier) == 0 {
			return nil
		}
	}
	return frontier
}
