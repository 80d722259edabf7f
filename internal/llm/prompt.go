package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/procurelens/procurelens/internal/mapping"
	"github.com/procurelens/procurelens/internal/service"
)

// promptSampleRows limits how much of the file we send to the model.
const promptSampleRows = 10

// buildAnalysisPrompt renders a parsed file into the assessment prompt. The
// model sees the actual headers, a small sample of rows and the standard field
// catalog, and is told to answer with one JSON object in the FileAssessment
// shape.
func buildAnalysisPrompt(req service.AnalyzeRequest) string {
	sample := req.Rows
	if len(sample) > promptSampleRows {
		sample = sample[:promptSampleRows]
	}

	sampleJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		sampleJSON = []byte("[]")
	}

	var catalog strings.Builder
	for _, field := range mapping.StandardFields {
		required := "optional"
		if field.Required {
			required = "required"
		}
		fmt.Fprintf(&catalog, "- %s (%s, %s): %s\n", field.Name, field.DataType, required, field.Description)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this procurement data file and assess its structure and quality.\n\n")
	fmt.Fprintf(&b, "Filename: %s\n", req.Filename)
	fmt.Fprintf(&b, "Total rows: %d\n", len(req.Rows))
	fmt.Fprintf(&b, "Column headers: %s\n\n", strings.Join(req.Headers, ", "))
	fmt.Fprintf(&b, "Sample rows:\n%s\n\n", sampleJSON)
	fmt.Fprintf(&b, "Standard procurement fields:\n%s\n", catalog.String())
	b.WriteString(`Respond with exactly one JSON object, no prose, in this shape:
{
  "dataSufficiency": "COMPLETE" | "PARTIAL" | "INSUFFICIENT",
  "uiRenderingDecision": "USE_STANDARD_UI" | "USE_CUSTOM_UI",
  "columnMappings": [{"originalName": "...", "standardName": "...", "confidence": 0.0, "dataType": "...", "required": false}],
  "missingColumns": [{"standardName": "...", "importance": "Critical" | "High" | "Medium" | "Low", "description": "...", "required": false}],
  "dataQualityIssues": [{"type": "...", "description": "...", "column": "...", "affectedRows": [], "severity": "Critical" | "High" | "Medium" | "Low"}],
  "recommendations": [{"action": "...", "description": "...", "priority": "High" | "Medium" | "Low"}],
  "qualityScore": 0
}

Map every header to its best standard field, or "Unknown" if none fits.
Only list a column as missing if no header actually maps to it.`)

	return b.String()
}
