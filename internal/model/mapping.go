package model

// StandardUnknown is the mapping target for headers with no plausible match.
const StandardUnknown = "Unknown"

// ColumnMapping links one uploaded header to a standard procurement field.
// Computed once per header set and read-only afterwards.
type ColumnMapping struct {
	OriginalName string  `json:"originalName"`
	StandardName string  `json:"standardName"`
	DataType     string  `json:"dataType"`
	Confidence   float64 `json:"confidence"`
	Required     bool    `json:"required"`
}

// Mapped reports whether the header resolved to a standard field with enough
// confidence to count toward sufficiency.
func (m ColumnMapping) Mapped() bool {
	return m.StandardName != StandardUnknown && m.Confidence > 0.5
}

// Importance ranks how badly a missing column hurts the analysis.
type Importance string

// Importance constants, most severe first.
const (
	ImportanceCritical Importance = "Critical"
	ImportanceHigh     Importance = "High"
	ImportanceMedium   Importance = "Medium"
	ImportanceLow      Importance = "Low"
)

// Rank returns a sortable ordinal, lower is more important.
func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 0
	case ImportanceHigh:
		return 1
	case ImportanceMedium:
		return 2
	default:
		return 3
	}
}

// MissingColumn describes a standard field no header resolved to.
type MissingColumn struct {
	StandardName string     `json:"column"`
	Description  string     `json:"description"`
	Importance   Importance `json:"importance"`
	Required     bool       `json:"required"`
}

// DataSufficiency is the ternary judgment of whether a dataset carries enough
// mapped fields to analyze. The three levels must never collapse to a boolean.
type DataSufficiency string

// Data sufficiency constants.
const (
	SufficiencyComplete     DataSufficiency = "COMPLETE"
	SufficiencyPartial      DataSufficiency = "PARTIAL"
	SufficiencyInsufficient DataSufficiency = "INSUFFICIENT"
)

// UIRendering selects the presentation surface for an uploaded dataset.
type UIRendering string

// UI rendering constants.
const (
	UIStandard UIRendering = "USE_STANDARD_UI"
	UICustom   UIRendering = "USE_CUSTOM_UI"
)
