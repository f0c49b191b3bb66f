package kml

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/logger"
)

// Namespaces declared on the output root.
const (
	NamespaceKML  = "http://www.opengis.net/kml/2.2"
	NamespaceGX   = "http://www.google.com/kml/ext/2.2"
	NamespaceAtom = "http://www.w3.org/2005/Atom"
)

// Schema and style identifiers.
const (
	SchemaHome   = "HOME"
	SchemaHook   = "HOOK"
	StyleDefault = "default_style"
	StyleHome    = "HOME_STYLE"
	StyleHook    = "HOOK_STYLE"
)

type styleDef struct {
	id   string
	icon string
}

var styles = []styleDef{
	{id: StyleDefault, icon: "http://maps.google.com/mapfiles/kml/pushpin/red-pushpin.png"},
	{id: StyleHome, icon: "http://maps.google.com/mapfiles/kml/paddle/wht-blank.png"},
	{id: StyleHook, icon: "http://maps.google.com/mapfiles/kml/paddle/blu-circle.png"},
}

type fieldDef struct {
	name string
	typ  string
}

var hookFields = []fieldDef{
	{name: "ID", typ: "string"},
	{name: "Lat", typ: "double"},
	{name: "Long", typ: "double"},
}

// folderNode is one folder of the output skeleton.
type folderNode struct {
	name     string
	children []folderNode
}

var skeleton = []folderNode{
	{name: "DISTRIBUSI", children: []folderNode{
		{name: "HP", children: []folderNode{{name: "HOME"}, {name: "HOME-BIZ"}}},
		{name: "POLE"},
		{name: "FDT"},
		{name: "FAT"},
		{name: "CABLE DISTRIBUTION"},
		{name: "CABLE DROP"},
		{name: "SLING WIRE"},
		{name: "HOOK"},
	}},
	{name: "Boundary", children: []folderNode{{name: domain.FolderBoundaryFAT}}},
	{name: "QSPAN"},
}

// Builder assembles the output KML document.
type Builder struct {
	doc      *etree.Document
	root     *etree.Element
	document *etree.Element
	folders  map[string]*etree.Element
}

// NewBuilder creates a document with the schemas, styles and empty
// folder skeleton in place.
func NewBuilder() *Builder {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("kml")
	root.CreateAttr("xmlns", NamespaceKML)
	root.CreateAttr("xmlns:gx", NamespaceGX)
	root.CreateAttr("xmlns:kml", NamespaceKML)
	root.CreateAttr("xmlns:atom", NamespaceAtom)

	b := &Builder{
		doc:      doc,
		root:     root,
		document: root.CreateElement("Document"),
		folders:  make(map[string]*etree.Element),
	}
	b.addSchemas()
	b.addStyles()
	b.addFolders(b.document, "", skeleton)
	return b
}

func (b *Builder) addSchemas() {
	home := b.document.CreateElement("Schema")
	home.CreateAttr("name", SchemaHome)
	home.CreateAttr("id", SchemaHome)
	for _, name := range domain.HomeFields {
		f := home.CreateElement("SimpleField")
		f.CreateAttr("name", name)
		f.CreateAttr("type", "string")
	}

	hook := b.document.CreateElement("Schema")
	hook.CreateAttr("name", SchemaHook)
	hook.CreateAttr("id", SchemaHook)
	for _, def := range hookFields {
		f := hook.CreateElement("SimpleField")
		f.CreateAttr("name", def.name)
		f.CreateAttr("type", def.typ)
	}
}

func (b *Builder) addStyles() {
	for _, s := range styles {
		style := b.document.CreateElement("Style")
		style.CreateAttr("id", s.id)
		style.CreateElement("IconStyle").CreateElement("Icon").SetText(s.icon)
	}
}

func (b *Builder) addFolders(parent *etree.Element, prefix string, nodes []folderNode) {
	for _, n := range nodes {
		f := parent.CreateElement(tagFolder)
		f.CreateElement(tagName).SetText(n.name)
		path := n.name
		if prefix != "" {
			path = prefix + "/" + n.name
		}
		b.folders[path] = f
		b.addFolders(f, path, n.children)
	}
}

// Folder returns the skeleton folder at path, or nil.
func (b *Builder) Folder(path string) *etree.Element {
	return b.folders[path]
}

// AddHome appends a home placemark to HOME or HOME-BIZ. A home without a
// position is written without a Point.
func (b *Builder) AddHome(h *domain.EnrichedHome) {
	folder := b.folders[domain.PathHomePass+"/"+h.Classification().String()]
	pm := folder.CreateElement(tagPlacemark)
	pm.CreateElement(tagName).SetText(h.Name)
	pm.CreateElement("styleUrl").SetText("#" + StyleHome)
	if h.HasPosition() {
		pm.CreateElement(tagPoint).CreateElement(tagCoordinates).SetText(FormatPoint(h.Position()))
	}
	data := schemaData(pm, SchemaHome)
	for _, name := range domain.HomeFields {
		simpleData(data, name, h.Fields[name])
	}
}

// AddHook appends a hook placemark to DISTRIBUSI/HOOK.
func (b *Builder) AddHook(r *domain.PointRecord) {
	folder := b.folders[domain.PathHook]
	pm := folder.CreateElement(tagPlacemark)
	pm.CreateElement(tagName).SetText(r.Name)
	pm.CreateElement("styleUrl").SetText("#" + StyleHook)

	lat, lon := "", ""
	if r.HasPosition() {
		pos := r.Position()
		pm.CreateElement(tagPoint).CreateElement(tagCoordinates).SetText(FormatPoint(pos))
		lat, lon = FormatNumber(pos.Lat), FormatNumber(pos.Lon)
	}
	data := schemaData(pm, SchemaHook)
	simpleData(data, "ID", r.Name)
	simpleData(data, "Lat", lat)
	simpleData(data, "Long", lon)
}

func schemaData(pm *etree.Element, schema string) *etree.Element {
	data := pm.CreateElement(tagExtendedData).CreateElement("SchemaData")
	data.CreateAttr("schemaUrl", "#"+schema)
	return data
}

func simpleData(parent *etree.Element, name, value string) {
	sd := parent.CreateElement(tagSimpleData)
	sd.CreateAttr("name", name)
	sd.SetText(value)
}

// CopyResult counts what CopyPaths moved.
type CopyResult struct {
	Elements int
	Skipped  int
}

// CopyPaths copies the children of every src folder reached by each path
// into the matching output folder. The destination for each segment is
// the first folder of that name below the previous destination; a missing
// destination skips the path with a warning.
func (b *Builder) CopyPaths(src *Document, paths []string) CopyResult {
	b.adoptNamespaces(src)
	var res CopyResult
	for _, path := range paths {
		sources := src.top()
		dest := b.root
		ok := true
		for _, segment := range splitPath(path) {
			next := firstNamedFolder(dest, segment)
			if next == nil {
				logger.Warn("destination folder %s not found for path %s", segment, path)
				ok = false
				break
			}
			var nextSources []*etree.Element
			for _, node := range sources {
				nextSources = append(nextSources, namedFolders(node, segment)...)
			}
			sources, dest = nextSources, next
			if len(sources) == 0 {
				break
			}
		}
		if !ok {
			res.Skipped++
			continue
		}
		if len(sources) == 0 {
			logger.Debug("kml: source path %q not found", path)
			continue
		}
		for _, folder := range sources {
			res.Elements += copyChildren(folder, dest)
		}
	}
	return res
}

// CopyBoundaryFAT copies the children of the first BOUNDARY FAT folder
// anywhere in src into the first BOUNDARY FAT folder of the output.
// It returns the number of elements copied.
func (b *Builder) CopyBoundaryFAT(src *Document) int {
	from := firstNamedFolder(&src.doc.Element, domain.FolderBoundaryFAT)
	if from == nil {
		logger.Debug("kml: no %s folder in source", domain.FolderBoundaryFAT)
		return 0
	}
	to := firstNamedFolder(b.root, domain.FolderBoundaryFAT)
	if to == nil {
		logger.Warn("destination folder %s not found", domain.FolderBoundaryFAT)
		return 0
	}
	b.adoptNamespaces(src)
	return copyChildren(from, to)
}

// copyChildren deep-copies every child element of from, except name,
// into to.
func copyChildren(from, to *etree.Element) int {
	n := 0
	for _, child := range from.ChildElements() {
		if child.Tag == tagName {
			continue
		}
		to.AddChild(child.Copy())
		n++
	}
	return n
}

// adoptNamespaces declares on the output root any prefixed namespace that
// src declares on its root and the output does not, so copied elements
// keep resolvable prefixes.
func (b *Builder) adoptNamespaces(src *Document) {
	srcRoot := src.doc.Root()
	if srcRoot == nil {
		return
	}
	for _, a := range srcRoot.Attr {
		if a.Space != "xmlns" || b.root.SelectAttr("xmlns:"+a.Key) != nil {
			continue
		}
		b.root.CreateAttr("xmlns:"+a.Key, a.Value)
	}
}

// Parsed returns the output as an input Document, sharing the tree.
func (b *Builder) Parsed() *Document {
	return &Document{doc: b.doc}
}

// Bytes serializes the document with an XML declaration and two-space
// indentation.
func (b *Builder) Bytes() ([]byte, error) {
	b.doc.Indent(2)
	return b.doc.WriteToBytes()
}

// String is Bytes as a string; serialization errors yield "".
func (b *Builder) String() string {
	data, err := b.Bytes()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
