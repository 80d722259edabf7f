package quality

import (
	"fmt"
	"testing"

	"github.com/procurelens/procurelens/internal/model"
)

func findIssue(issues []model.ValidationIssue, issueType string) *model.ValidationIssue {
	for i := range issues {
		if issues[i].Type == issueType {
			return &issues[i]
		}
	}
	return nil
}

func TestValidateEmptyTable(t *testing.T) {
	result := Validate([]string{"A", "B"}, nil)

	if result.QualityScore != 0 {
		t.Errorf("empty table score = %d, want 0", result.QualityScore)
	}

	issue := findIssue(result.Issues, "No Data")
	if issue == nil {
		t.Fatal("expected a No Data issue")
	}
	if issue.Severity != model.ImportanceCritical {
		t.Errorf("No Data severity = %q, want Critical", issue.Severity)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Action != "Upload valid file" {
		t.Errorf("unexpected recommendations: %+v", result.Recommendations)
	}
}

func TestValidateCleanData(t *testing.T) {
	headers := []string{"PO Number", "Vendor", "Item"}
	var rows []model.RawRow
	for i := 0; i < 20; i++ {
		rows = append(rows, model.RawRow{
			"PO Number": fmt.Sprintf("PO-%03d", i),
			"Vendor":    fmt.Sprintf("Vendor %d", i),
			"Item":      fmt.Sprintf("Item %d", i),
		})
	}

	result := Validate(headers, rows)

	if result.QualityScore != 100 {
		t.Errorf("clean data score = %d, want 100", result.QualityScore)
	}
	if len(result.Issues) != 0 {
		t.Errorf("clean data produced issues: %+v", result.Issues)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Action != "Data Quality Good" {
		t.Errorf("unexpected recommendations: %+v", result.Recommendations)
	}
}

func TestCheckMissingValuesSeverity(t *testing.T) {
	tests := []struct {
		name         string
		wantSeverity model.Importance
		missingRows  int
	}{
		{name: "over half missing", wantSeverity: model.ImportanceCritical, missingRows: 11},
		{name: "over quarter missing", wantSeverity: model.ImportanceHigh, missingRows: 6},
		{name: "over tenth missing", wantSeverity: model.ImportanceMedium, missingRows: 3},
		{name: "few missing", wantSeverity: model.ImportanceLow, missingRows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []model.RawRow
			for i := 0; i < 20; i++ {
				row := model.RawRow{"ID": fmt.Sprintf("R%d", i), "Notes": "ok"}
				if i < tt.missingRows {
					row["Notes"] = nil
				}
				rows = append(rows, row)
			}

			result := Validate([]string{"ID", "Notes"}, rows)
			issue := findIssue(result.Issues, "Missing Values")
			if issue == nil {
				t.Fatal("expected a Missing Values issue")
			}
			if issue.Severity != tt.wantSeverity {
				t.Errorf("severity = %q, want %q", issue.Severity, tt.wantSeverity)
			}
			if issue.Column != "Notes" {
				t.Errorf("column = %q, want Notes", issue.Column)
			}
			if len(issue.AffectedRows) != tt.missingRows {
				t.Errorf("affected rows = %d, want %d", len(issue.AffectedRows), tt.missingRows)
			}
		})
	}
}

func TestCheckDuplicates(t *testing.T) {
	var rows []model.RawRow
	for i := 0; i < 8; i++ {
		rows = append(rows, model.RawRow{"ID": fmt.Sprintf("R%d", i), "V": float64(i)})
	}
	// Two exact copies of row 0.
	rows = append(rows, model.RawRow{"ID": "R0", "V": 0.0})
	rows = append(rows, model.RawRow{"ID": "R0", "V": 0.0})

	result := Validate([]string{"ID", "V"}, rows)
	issue := findIssue(result.Issues, "Duplicate Rows")
	if issue == nil {
		t.Fatal("expected a Duplicate Rows issue")
	}

	// 2 extra rows out of 10 is 20%: High, not Critical.
	if issue.Severity != model.ImportanceHigh {
		t.Errorf("severity = %q, want High", issue.Severity)
	}
	if len(issue.AffectedRows) != 2 {
		t.Errorf("affected rows = %v, want the 2 duplicate occurrences", issue.AffectedRows)
	}
}

func TestCheckFormatsNumericColumn(t *testing.T) {
	// 3 of 5 present values in an amount-named column are non-numeric (60%).
	headers := []string{"Total Amount"}
	rows := []model.RawRow{
		{"Total Amount": 100.0},
		{"Total Amount": "n/a"},
		{"Total Amount": "pending"},
		{"Total Amount": "unknown"},
		{"Total Amount": 250.0},
	}

	result := Validate(headers, rows)
	issue := findIssue(result.Issues, "Invalid Numeric Format")
	if issue == nil {
		t.Fatal("expected an Invalid Numeric Format issue")
	}
	if issue.Severity != model.ImportanceHigh {
		t.Errorf("severity = %q, want High for 60%% invalid", issue.Severity)
	}

	var hasFormatRec bool
	for _, rec := range result.Recommendations {
		if rec.Action == "Fix Data Formats" {
			hasFormatRec = true
		}
	}
	if !hasFormatRec {
		t.Error("expected a Fix Data Formats recommendation")
	}
}

func TestCheckFormatsDateColumn(t *testing.T) {
	headers := []string{"Order Date"}
	rows := []model.RawRow{
		{"Order Date": "2023-05-10"},
		{"Order Date": 44927.0},
		{"Order Date": "not a date"},
		{"Order Date": "2023-06-01"},
		{"Order Date": "2023-06-02"},
		{"Order Date": "2023-06-03"},
		{"Order Date": "2023-06-04"},
		{"Order Date": "2023-06-05"},
		{"Order Date": "2023-06-06"},
		{"Order Date": "2023-06-07"},
	}

	result := Validate(headers, rows)
	issue := findIssue(result.Issues, "Invalid Date Format")
	if issue == nil {
		t.Fatal("expected an Invalid Date Format issue")
	}
	// 1 of 10 is 10%: Low.
	if issue.Severity != model.ImportanceLow {
		t.Errorf("severity = %q, want Low for 10%% invalid", issue.Severity)
	}
}

func TestCheckOutliers(t *testing.T) {
	// 19 clustered values and one extreme one in a quantity column.
	headers := []string{"Qty"}
	var rows []model.RawRow
	for i := 0; i < 19; i++ {
		rows = append(rows, model.RawRow{"Qty": 100.0 + float64(i%3)})
	}
	rows = append(rows, model.RawRow{"Qty": 100000.0})

	result := Validate(headers, rows)
	issue := findIssue(result.Issues, "Statistical Outliers")
	if issue == nil {
		t.Fatal("expected a Statistical Outliers issue")
	}
	if len(issue.AffectedRows) != 1 || issue.AffectedRows[0] != 20 {
		t.Errorf("affected rows = %v, want [20]", issue.AffectedRows)
	}
}

func TestCheckOutliersSkipsSmallColumns(t *testing.T) {
	headers := []string{"Qty"}
	rows := []model.RawRow{
		{"Qty": 1.0}, {"Qty": 2.0}, {"Qty": 3.0}, {"Qty": 1000000.0},
	}

	result := Validate(headers, rows)
	if issue := findIssue(result.Issues, "Statistical Outliers"); issue != nil {
		t.Errorf("outlier check ran on a column with fewer than 10 values: %+v", issue)
	}
}

func TestCheckCasing(t *testing.T) {
	headers := []string{"Vendor"}
	rows := []model.RawRow{
		{"Vendor": "Acme Foods"},
		{"Vendor": "ACME FOODS"},
		{"Vendor": "acme foods"},
		{"Vendor": "CleanCo"},
		{"Vendor": "CleanCo"},
		{"Vendor": "FixIt"},
	}

	result := Validate(headers, rows)
	issue := findIssue(result.Issues, "Inconsistent Text Casing")
	if issue == nil {
		t.Fatal("expected an Inconsistent Text Casing issue")
	}
	if issue.Severity != model.ImportanceLow {
		t.Errorf("severity = %q, want Low", issue.Severity)
	}
	if len(issue.AffectedRows) != 0 {
		t.Errorf("casing issue should carry no row evidence, got %v", issue.AffectedRows)
	}
}

func TestScoreBounds(t *testing.T) {
	// A pathological table with everything wrong still scores within [0, 100].
	headers := []string{"Total Amount", "Order Date", "Vendor"}
	var rows []model.RawRow
	for i := 0; i < 30; i++ {
		rows = append(rows, model.RawRow{
			"Total Amount": "broken",
			"Order Date":   "broken",
			"Vendor":       nil,
		})
	}

	result := Validate(headers, rows)
	if result.QualityScore < 0 || result.QualityScore > 100 {
		t.Errorf("score = %d, want within [0, 100]", result.QualityScore)
	}
}
