package llm

import (
	"encoding/json"
	"fmt"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/mapping"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/service"
)

// parseAssessment decodes a model completion into a FileAssessment and
// sanitizes every field the caller depends on. Model output is untrusted:
// enum values outside their domain fall back to safe defaults, the score is
// clamped, and claimed missing columns are re-checked against the headers the
// file actually has.
func parseAssessment(content string, req service.AnalyzeRequest) (*model.FileAssessment, error) {
	cleaned := cleanMarkdownWrapper(content)

	var assessment model.FileAssessment
	if err := json.Unmarshal([]byte(cleaned), &assessment); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	sanitizeAssessment(&assessment, req)
	return &assessment, nil
}

func sanitizeAssessment(a *model.FileAssessment, req service.AnalyzeRequest) {
	switch a.DataSufficiency {
	case model.SufficiencyComplete, model.SufficiencyPartial, model.SufficiencyInsufficient:
	default:
		a.DataSufficiency = model.SufficiencyPartial
	}

	switch a.UIRendering {
	case model.UIStandard, model.UICustom:
	default:
		a.UIRendering = model.UICustom
	}

	a.QualityScore = model.ClampScore(float64(a.QualityScore))

	for i := range a.ColumnMappings {
		m := &a.ColumnMappings[i]
		if m.StandardName == "" {
			m.StandardName = model.StandardUnknown
		}
		if m.Confidence < 0 {
			m.Confidence = 0
		}
		if m.Confidence > 1 {
			m.Confidence = 1
		}
	}

	a.MissingColumns = confirmMissing(a.MissingColumns, req.Headers)

	for i := range a.QualityIssues {
		switch a.QualityIssues[i].Severity {
		case model.ImportanceCritical, model.ImportanceHigh, model.ImportanceMedium, model.ImportanceLow:
		default:
			a.QualityIssues[i].Severity = model.ImportanceLow
		}
	}

	// The preview always comes from the real file, never from the model.
	a.DataPreview = preview(req.Rows)
}

// confirmMissing drops missing-column claims that the local mapper can
// disprove. Models occasionally report a column as absent when a header maps
// to it cleanly; the deterministic mapper is the authority on that question.
func confirmMissing(claimed []model.MissingColumn, headers []string) []model.MissingColumn {
	actuallyMapped := make(map[string]bool)
	for _, m := range mapping.MapColumns(headers) {
		if m.Mapped() {
			actuallyMapped[m.StandardName] = true
		}
	}

	confirmed := make([]model.MissingColumn, 0, len(claimed))
	for _, mc := range claimed {
		if actuallyMapped[mc.StandardName] {
			continue
		}
		confirmed = append(confirmed, mc)
	}
	return confirmed
}
