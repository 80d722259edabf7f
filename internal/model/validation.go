package model

// ValidationIssue is one data-quality finding over a parsed table.
type ValidationIssue struct {
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Column       string     `json:"column,omitempty"`
	AffectedRows []int      `json:"affectedRows"`
	Severity     Importance `json:"severity"`
}

// Recommendation is a prioritized remediation derived from the issue set.
type Recommendation struct {
	Action      string     `json:"action"`
	Description string     `json:"description"`
	Priority    Importance `json:"priority"`
}

// ValidationResult is the full data-quality report for one table.
type ValidationResult struct {
	Issues          []ValidationIssue `json:"issues"`
	Recommendations []Recommendation  `json:"recommendations"`
	QualityScore    int               `json:"qualityScore"`
}

// FileAssessment combines column mapping and quality scoring for one uploaded
// file. Remote analyzers must produce the same shape as the local one; callers
// never see a structurally invalid assessment.
type FileAssessment struct {
	DataSufficiency DataSufficiency   `json:"dataSufficiency"`
	UIRendering     UIRendering       `json:"uiRenderingDecision"`
	ColumnMappings  []ColumnMapping   `json:"columnMappings"`
	MissingColumns  []MissingColumn   `json:"missingColumns"`
	QualityIssues   []ValidationIssue `json:"dataQualityIssues"`
	Recommendations []Recommendation  `json:"recommendations"`
	DataPreview     []RawRow          `json:"dataPreview"`
	QualityScore    int               `json:"qualityScore"`
}
