package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/service"
)

// fakeClient returns canned completions or errors in order.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
}

func (c *fakeClient) Complete(_ context.Context, _ string) (string, error) {
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", errors.New("no more responses")
}

var testRequest = service.AnalyzeRequest{
	Filename: "orders.csv",
	Headers:  []string{"PO Number", "Vendor Name", "Item Description", "Quantity", "Unit Price", "Total Amount", "Order Date"},
	Rows: []model.RawRow{
		{"PO Number": "PO-1", "Vendor Name": "Acme", "Total Amount": 100.0},
	},
}

func TestLocalAnalyzer(t *testing.T) {
	analyzer := NewLocalAnalyzer(slog.Default())

	assessment, err := analyzer.AnalyzeFile(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}

	if assessment.DataSufficiency != model.SufficiencyComplete {
		t.Errorf("DataSufficiency = %q, want COMPLETE", assessment.DataSufficiency)
	}
	if assessment.UIRendering != model.UIStandard {
		t.Errorf("UIRendering = %q, want standard UI", assessment.UIRendering)
	}
	if len(assessment.ColumnMappings) != len(testRequest.Headers) {
		t.Errorf("got %d column mappings, want %d", len(assessment.ColumnMappings), len(testRequest.Headers))
	}
	if len(assessment.DataPreview) != 1 {
		t.Errorf("preview has %d rows, want 1", len(assessment.DataPreview))
	}
}

func TestLocalAnalyzerPreviewCap(t *testing.T) {
	req := testRequest
	req.Rows = nil
	for i := 0; i < 25; i++ {
		req.Rows = append(req.Rows, model.RawRow{"PO Number": fmt.Sprintf("PO-%d", i)})
	}

	analyzer := NewLocalAnalyzer(slog.Default())
	assessment, err := analyzer.AnalyzeFile(context.Background(), req)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(assessment.DataPreview) != previewRows {
		t.Errorf("preview has %d rows, want %d", len(assessment.DataPreview), previewRows)
	}
}

func TestRemoteAnalyzerFallsBackOnError(t *testing.T) {
	client := &fakeClient{errs: []error{
		errors.New("boom"), errors.New("boom"), errors.New("boom"),
	}}
	analyzer := NewRemoteAnalyzer(client, Config{MaxRetries: 3, RetryDelay: 1}, slog.Default())
	defer analyzer.Close()

	assessment, err := analyzer.AnalyzeFile(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("AnalyzeFile failed despite local fallback: %v", err)
	}
	// The local analyzer answered.
	if assessment.DataSufficiency != model.SufficiencyComplete {
		t.Errorf("fallback DataSufficiency = %q, want COMPLETE", assessment.DataSufficiency)
	}
}

func TestRemoteAnalyzerFallsBackOnMalformedJSON(t *testing.T) {
	client := &fakeClient{responses: []string{"not json", "still not json", "nope"}}
	analyzer := NewRemoteAnalyzer(client, Config{MaxRetries: 3, RetryDelay: 1}, slog.Default())
	defer analyzer.Close()

	assessment, err := analyzer.AnalyzeFile(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("AnalyzeFile failed despite local fallback: %v", err)
	}
	if assessment == nil || len(assessment.ColumnMappings) != len(testRequest.Headers) {
		t.Error("fallback assessment does not reflect the actual headers")
	}
}

func TestRemoteAnalyzerUsesModelResponse(t *testing.T) {
	client := &fakeClient{responses: []string{`{
		"dataSufficiency": "PARTIAL",
		"uiRenderingDecision": "USE_CUSTOM_UI",
		"columnMappings": [{"originalName": "PO Number", "standardName": "PO_Number", "confidence": 0.95, "dataType": "string", "required": true}],
		"missingColumns": [],
		"dataQualityIssues": [],
		"recommendations": [],
		"qualityScore": 82
	}`}}
	analyzer := NewRemoteAnalyzer(client, Config{}, slog.Default())
	defer analyzer.Close()

	assessment, err := analyzer.AnalyzeFile(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if assessment.DataSufficiency != model.SufficiencyPartial {
		t.Errorf("DataSufficiency = %q, want model's PARTIAL", assessment.DataSufficiency)
	}
	if assessment.QualityScore != 82 {
		t.Errorf("QualityScore = %d, want 82", assessment.QualityScore)
	}
	if client.calls != 1 {
		t.Errorf("client called %d times, want 1", client.calls)
	}
}

func TestParseAssessmentSanitizes(t *testing.T) {
	content := "```json\n" + `{
		"dataSufficiency": "MAYBE",
		"uiRenderingDecision": "SOMETHING_ELSE",
		"columnMappings": [{"originalName": "X", "standardName": "", "confidence": 7.5}],
		"dataQualityIssues": [{"type": "Weird", "severity": "Extreme"}],
		"qualityScore": 250
	}` + "\n```"

	assessment, err := parseAssessment(content, testRequest)
	if err != nil {
		t.Fatalf("parseAssessment failed: %v", err)
	}

	if assessment.DataSufficiency != model.SufficiencyPartial {
		t.Errorf("invalid sufficiency sanitized to %q, want PARTIAL", assessment.DataSufficiency)
	}
	if assessment.UIRendering != model.UICustom {
		t.Errorf("invalid rendering sanitized to %q, want custom UI", assessment.UIRendering)
	}
	if assessment.QualityScore != 100 {
		t.Errorf("score 250 clamped to %d, want 100", assessment.QualityScore)
	}
	if assessment.ColumnMappings[0].StandardName != model.StandardUnknown {
		t.Errorf("empty standard name sanitized to %q, want Unknown", assessment.ColumnMappings[0].StandardName)
	}
	if assessment.ColumnMappings[0].Confidence != 1 {
		t.Errorf("confidence 7.5 clamped to %v, want 1", assessment.ColumnMappings[0].Confidence)
	}
	if assessment.QualityIssues[0].Severity != model.ImportanceLow {
		t.Errorf("unknown severity sanitized to %q, want Low", assessment.QualityIssues[0].Severity)
	}
	if len(assessment.DataPreview) != len(testRequest.Rows) {
		t.Error("preview must come from the actual file rows")
	}
}

func TestParseAssessmentRejectsNonJSON(t *testing.T) {
	if _, err := parseAssessment("I cannot help with that.", testRequest); err == nil {
		t.Fatal("parseAssessment accepted prose")
	}
}

func TestConfirmMissingDropsDisprovenClaims(t *testing.T) {
	// PO_Number is present in the headers, Budget_Code genuinely is not.
	claimed := []model.MissingColumn{
		{StandardName: "PO_Number"},
		{StandardName: "Budget_Code"},
	}

	confirmed := confirmMissing(claimed, testRequest.Headers)
	if len(confirmed) != 1 {
		t.Fatalf("got %d confirmed missing columns, want 1", len(confirmed))
	}
	if confirmed[0].StandardName != "Budget_Code" {
		t.Errorf("confirmed missing = %q, want Budget_Code", confirmed[0].StandardName)
	}
}

func TestBuildAnalysisPromptContents(t *testing.T) {
	prompt := buildAnalysisPrompt(testRequest)

	for _, want := range []string{"orders.csv", "PO Number", "PO_Number", "dataSufficiency"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
