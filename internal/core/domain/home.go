package domain

// Home schema field names, in output order.
const (
	FieldHomeID          = "HOME_ID"
	FieldClusterName     = "CLUSTER_NAME"
	FieldBlock           = "BLOCK"
	FieldFloor           = "FLOOR"
	FieldRT              = "RT"
	FieldRW              = "RW"
	FieldDistrict        = "DISTRICT"
	FieldSubDistrict     = "SUB_DISTRICT"
	FieldFDTCode         = "FDT_CODE"
	FieldFATCode         = "FAT_CODE"
	FieldPostCode        = "POST_CODE"
	FieldAddressPoleFAT  = "ADDRESS_POLE___FAT"
	FieldBuildingName    = "BUILDING_NAME"
	FieldTower           = "TOWER"
	FieldAPTN            = "APTN"
	FieldFiberNodeHFC    = "FIBER_NODE__HFC_"
	FieldClampHookID     = "Clamp_Hook_ID"
	FieldCategoryBizPass = "Category_BizPass"
	FieldHouseComment    = "HOUSE_COMMENT_"
)

// Flag values written by conflation.
const (
	BizPassBusiness   = "BUSINESS"
	CommentNeedSurvey = "NEED SURVEY"
)

// HomeFields is the HOME schema, in declaration order.
var HomeFields = []string{
	FieldHomeID,
	FieldClusterName,
	FieldBlock,
	FieldFloor,
	FieldRT,
	FieldRW,
	FieldDistrict,
	FieldSubDistrict,
	FieldFDTCode,
	FieldFATCode,
	FieldPostCode,
	FieldAddressPoleFAT,
	FieldBuildingName,
	FieldTower,
	FieldAPTN,
	FieldFiberNodeHFC,
	FieldClampHookID,
	FieldCategoryBizPass,
	FieldHouseComment,
}

// InheritedFields are copied verbatim from the nearest regular home-pass.
// CLUSTER_NAME and Category_BizPass are inherited too, with their own rules.
var InheritedFields = []string{
	FieldHomeID,
	FieldBlock,
	FieldFloor,
	FieldRT,
	FieldRW,
	FieldDistrict,
	FieldSubDistrict,
	FieldFDTCode,
	FieldPostCode,
	FieldAddressPoleFAT,
	FieldBuildingName,
	FieldTower,
	FieldAPTN,
	FieldFiberNodeHFC,
}

// Classification routes an enriched home to its output folder.
type Classification int

const (
	// ClassResidential places the home in DISTRIBUSI/HP/HOME.
	ClassResidential Classification = iota

	// ClassBusiness places the home in DISTRIBUSI/HP/HOME-BIZ.
	ClassBusiness
)

// String returns the output folder name for the classification.
func (c Classification) String() string {
	if c == ClassBusiness {
		return "HOME-BIZ"
	}
	return "HOME"
}

// EnrichedHome is a small-alley home-pass after conflation.
type EnrichedHome struct {
	// Name is carried over from the small-alley placemark.
	Name string

	// Coordinates is the small-alley placemark's tuple list.
	Coordinates []Coordinate

	// Fields holds the 19 HOME values. Every HomeFields key is present.
	Fields map[string]string

	// Match describes which neighbours were used; it feeds the audit report.
	Match MatchInfo
}

// MatchInfo records what the conflation engine found for one home.
// Distances are meters; a negative distance means no candidate.
type MatchInfo struct {
	RegularName     string
	RegularDistance float64
	HookName        string
	HookDistance    float64
	HookLinked      bool
	ZoneMatched     bool
}

// NewEnrichedHome returns a home with every HOME field set to "".
func NewEnrichedHome(src *PointRecord) *EnrichedHome {
	fields := make(map[string]string, len(HomeFields))
	for _, name := range HomeFields {
		fields[name] = ""
	}
	h := &EnrichedHome{
		Fields: fields,
		Match:  MatchInfo{RegularDistance: -1, HookDistance: -1},
	}
	if src != nil {
		h.Name = src.Name
		h.Coordinates = src.Coordinates
	}
	return h
}

// HasPosition reports whether the home has at least one coordinate.
func (h *EnrichedHome) HasPosition() bool {
	return len(h.Coordinates) > 0
}

// Position returns the first coordinate. Callers check HasPosition first.
func (h *EnrichedHome) Position() Coordinate {
	return h.Coordinates[0]
}

// Classification returns the folder the home belongs to.
func (h *EnrichedHome) Classification() Classification {
	if h.Fields[FieldCategoryBizPass] == BizPassBusiness {
		return ClassBusiness
	}
	return ClassResidential
}

// Values returns the HOME values in schema order.
func (h *EnrichedHome) Values() []string {
	out := make([]string, len(HomeFields))
	for i, name := range HomeFields {
		out[i] = h.Fields[name]
	}
	return out
}
