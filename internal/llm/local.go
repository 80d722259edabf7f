package llm

import (
	"context"
	"log/slog"

	"github.com/procurelens/procurelens/internal/mapping"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/quality"
	"github.com/procurelens/procurelens/internal/service"
)

// previewRows caps the data preview carried in an assessment.
const previewRows = 10

// LocalAnalyzer is the deterministic, always-available column analyzer built
// on the fuzzy mapper and the quality validator. It is also the mandatory
// fallback behind every remote analyzer.
type LocalAnalyzer struct {
	logger *slog.Logger
}

// NewLocalAnalyzer creates a LocalAnalyzer.
func NewLocalAnalyzer(logger *slog.Logger) *LocalAnalyzer {
	return &LocalAnalyzer{logger: logger}
}

// AnalyzeFile assesses one parsed file. It never fails: headers that match
// nothing become Unknown mappings and empty data yields the Critical
// "No Data" quality report.
func (a *LocalAnalyzer) AnalyzeFile(_ context.Context, req service.AnalyzeRequest) (*model.FileAssessment, error) {
	mappings := mapping.MapColumns(req.Headers)
	sufficiency := mapping.Sufficiency(mappings)
	report := quality.Validate(req.Headers, req.Rows)

	assessment := &model.FileAssessment{
		DataSufficiency: sufficiency,
		QualityScore:    report.QualityScore,
		UIRendering:     mapping.UIDecision(mappings, sufficiency),
		ColumnMappings:  mappings,
		MissingColumns:  mapping.FindMissing(mappings),
		QualityIssues:   report.Issues,
		Recommendations: report.Recommendations,
		DataPreview:     preview(req.Rows),
	}

	a.logger.Debug("local file assessment",
		"filename", req.Filename,
		"sufficiency", assessment.DataSufficiency,
		"quality_score", assessment.QualityScore,
		"missing_columns", len(assessment.MissingColumns))

	return assessment, nil
}

func preview(rows []model.RawRow) []model.RawRow {
	if len(rows) > previewRows {
		return rows[:previewRows]
	}
	return rows
}
