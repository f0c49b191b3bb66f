package kml

const regularKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2" xmlns:gx="http://www.google.com/kml/ext/2.2">
<Document>
  <name>regular</name>
  <Folder>
    <name>DISTRIBUSI</name>
    <Folder>
      <name> HP </name>
      <Placemark>
        <name> R-001 </name>
        <Point><coordinates>106.8000,-6.2000,0</coordinates></Point>
        <ExtendedData>
          <SchemaData schemaUrl="#HOME">
            <SimpleData name="HOME_ID">H-1</SimpleData>
            <SimpleData name="CLUSTER_NAME">Desa Mawar</SimpleData>
            <SimpleData name="Category_BizPass">BUSINESS</SimpleData>
            <SimpleData>orphan</SimpleData>
            <SimpleData name="HOME_ID"> H-1b </SimpleData>
          </SchemaData>
        </ExtendedData>
      </Placemark>
      <Placemark>
        <name>R-002</name>
        <LineString><coordinates>
          106.8010,-6.2010,5 bad,-6.0 106.8020,-6.2020
        </coordinates></LineString>
      </Placemark>
    </Folder>
    <Folder>
      <name>HOOK</name>
      <Placemark>
        <name>HK-01</name>
        <Point><coordinates>106.8001,-6.2001,0</coordinates></Point>
      </Placemark>
    </Folder>
    <Folder>
      <name>POLE</name>
      <Placemark><name>P-1</name><Point><coordinates>106.9,-6.3,0</coordinates></Point></Placemark>
      <Placemark><name>P-2</name><Point><coordinates>106.91,-6.31,0</coordinates></Point></Placemark>
    </Folder>
    <Folder>
      <name>CABLE DROP</name>
      <description>drops</description>
      <Placemark><name>CD-1</name><gx:Track/></Placemark>
    </Folder>
  </Folder>
  <Folder>
    <name>QSPAN</name>
    <Placemark><name>Q-1</name></Placemark>
  </Folder>
</Document>
</kml>`

const alleyKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Folder>
    <name>DISTRIBUSI</name>
    <Folder>
      <name>HP</name>
      <Placemark>
        <name>A-001</name>
        <Point><coordinates>106.80005,-6.20005,0</coordinates></Point>
      </Placemark>
    </Folder>
  </Folder>
  <Folder>
    <name>Boundary</name>
    <Folder>
      <name>BOUNDARY FAT</name>
      <Placemark>
        <name>FAT01</name>
        <Polygon><outerBoundaryIs><LinearRing><coordinates>
          106.79,-6.21,0 106.81,-6.21,0 106.81,-6.19,0 106.79,-6.19,0 106.79,-6.21,0
        </coordinates></LinearRing></outerBoundaryIs></Polygon>
      </Placemark>
      <Placemark>
        <name>FAT02</name>
        <Polygon><innerBoundaryIs><LinearRing><coordinates>1,1 2,2 3,1</coordinates></LinearRing></innerBoundaryIs></Polygon>
      </Placemark>
    </Folder>
  </Folder>
</Document>
</kml>`
