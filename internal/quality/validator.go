// Package quality scans any parsed table for data-quality defects and turns
// the findings into a 0-100 score plus prioritized recommendations. It knows
// nothing about procurement semantics.
package quality

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/tabular"
)

// maxEvidenceRows caps the per-issue row list kept for display.
const maxEvidenceRows = 50

var (
	numericColumn = regexp.MustCompile(`(?i)price|cost|amount|total|quantity|qty|rate|value`)
	dateColumn    = regexp.MustCompile(`(?i)date|time|created|updated|delivery|due`)
)

// Validate runs every check over the table and assembles the quality report.
// An empty table scores 0 with a Critical "No Data" issue.
func Validate(headers []string, rows []model.RawRow) model.ValidationResult {
	if len(rows) == 0 {
		return model.ValidationResult{
			QualityScore: 0,
			Issues: []model.ValidationIssue{{
				Type:        "No Data",
				Description: "No data found in the uploaded file",
				Severity:    model.ImportanceCritical,
			}},
			Recommendations: []model.Recommendation{{
				Action:      "Upload valid file",
				Description: "Please upload a file with data rows",
				Priority:    model.ImportanceCritical,
			}},
		}
	}

	var issues []model.ValidationIssue
	issues = append(issues, checkMissingValues(headers, rows)...)
	issues = append(issues, checkDuplicates(rows)...)
	issues = append(issues, checkFormats(headers, rows)...)
	issues = append(issues, checkOutliers(headers, rows)...)
	issues = append(issues, checkCasing(headers, rows)...)

	return model.ValidationResult{
		QualityScore:    scoreIssues(issues, len(rows)),
		Issues:          issues,
		Recommendations: recommend(issues),
	}
}

// checkMissingValues flags blank cells per column, graded by the share of
// rows affected.
func checkMissingValues(headers []string, rows []model.RawRow) []model.ValidationIssue {
	var issues []model.ValidationIssue

	for _, column := range headers {
		var missing []int
		for i, row := range rows {
			if tabular.Blank(row[column]) {
				missing = append(missing, i+1)
			}
		}
		if len(missing) == 0 {
			continue
		}

		pct := float64(len(missing)) / float64(len(rows)) * 100
		severity := model.ImportanceLow
		switch {
		case pct > 50:
			severity = model.ImportanceCritical
		case pct > 25:
			severity = model.ImportanceHigh
		case pct > 10:
			severity = model.ImportanceMedium
		}

		issues = append(issues, model.ValidationIssue{
			Type:         "Missing Values",
			Description:  fmt.Sprintf("Column %q has %d missing values (%.1f%%)", column, len(missing), pct),
			AffectedRows: capRows(missing),
			Severity:     severity,
			Column:       column,
		})
	}

	return issues
}

// checkDuplicates flags rows whose full-record serialization repeats.
func checkDuplicates(rows []model.RawRow) []model.ValidationIssue {
	seen := make(map[string][]int)
	var order []string
	for i, row := range rows {
		key := serializeRow(row)
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], i+1)
	}

	duplicateSets := 0
	duplicateRows := 0
	var affected []int
	for _, key := range order {
		indices := seen[key]
		if len(indices) < 2 {
			continue
		}
		duplicateSets++
		duplicateRows += len(indices) - 1
		affected = append(affected, indices[1:]...)
	}
	if duplicateSets == 0 {
		return nil
	}

	pct := float64(duplicateRows) / float64(len(rows)) * 100
	severity := model.ImportanceLow
	switch {
	case pct > 20:
		severity = model.ImportanceCritical
	case pct > 10:
		severity = model.ImportanceHigh
	case pct > 5:
		severity = model.ImportanceMedium
	}

	return []model.ValidationIssue{{
		Type:         "Duplicate Rows",
		Description:  fmt.Sprintf("Found %d sets of duplicate rows affecting %d rows (%.1f%%)", duplicateSets, duplicateRows, pct),
		AffectedRows: capRows(affected),
		Severity:     severity,
	}}
}

// checkFormats validates columns whose names indicate numeric or date
// content against actual cell values.
func checkFormats(headers []string, rows []model.RawRow) []model.ValidationIssue {
	var issues []model.ValidationIssue

	for _, column := range headers {
		values := presentValues(column, rows)
		if len(values) == 0 {
			continue
		}

		if numericColumn.MatchString(column) {
			var invalid []int
			for _, v := range values {
				if _, ok := tabular.Float(v.value); !ok {
					invalid = append(invalid, v.row)
				}
			}
			if len(invalid) > 0 {
				pct := float64(len(invalid)) / float64(len(values)) * 100
				issues = append(issues, model.ValidationIssue{
					Type:         "Invalid Numeric Format",
					Description:  fmt.Sprintf("Column %q appears to be numeric but has %d non-numeric values (%.1f%%)", column, len(invalid), pct),
					AffectedRows: capRows(invalid),
					Severity:     formatSeverity(pct),
					Column:       column,
				})
			}
		}

		if dateColumn.MatchString(column) {
			var invalid []int
			for _, v := range values {
				if _, ok := tabular.Time(v.value); !ok {
					invalid = append(invalid, v.row)
				}
			}
			if len(invalid) > 0 {
				pct := float64(len(invalid)) / float64(len(values)) * 100
				issues = append(issues, model.ValidationIssue{
					Type:         "Invalid Date Format",
					Description:  fmt.Sprintf("Column %q appears to be a date but has %d invalid date values (%.1f%%)", column, len(invalid), pct),
					AffectedRows: capRows(invalid),
					Severity:     formatSeverity(pct),
					Column:       column,
				})
			}
		}
	}

	return issues
}

func formatSeverity(pct float64) model.Importance {
	switch {
	case pct > 25:
		return model.ImportanceHigh
	case pct > 10:
		return model.ImportanceMedium
	default:
		return model.ImportanceLow
	}
}

// checkOutliers flags values more than 3 standard deviations from the column
// mean, on numeric columns with at least 10 valid values, and only when more
// than 1% of values qualify.
func checkOutliers(headers []string, rows []model.RawRow) []model.ValidationIssue {
	var issues []model.ValidationIssue

	for _, column := range headers {
		type numeric struct {
			value float64
			row   int
		}
		var values []numeric
		for i, row := range rows {
			if f, ok := tabular.Float(row[column]); ok {
				values = append(values, numeric{value: f, row: i + 1})
			}
		}
		if len(values) < 10 {
			continue
		}

		var sum float64
		for _, v := range values {
			sum += v.value
		}
		mean := sum / float64(len(values))

		var variance float64
		for _, v := range values {
			variance += (v.value - mean) * (v.value - mean)
		}
		stdDev := math.Sqrt(variance / float64(len(values)))

		var outliers []int
		for _, v := range values {
			if math.Abs(v.value-mean) > 3*stdDev {
				outliers = append(outliers, v.row)
			}
		}
		if len(outliers) == 0 {
			continue
		}

		pct := float64(len(outliers)) / float64(len(values)) * 100
		if pct <= 1 {
			continue
		}

		severity := model.ImportanceLow
		if pct > 10 {
			severity = model.ImportanceMedium
		}

		issues = append(issues, model.ValidationIssue{
			Type:         "Statistical Outliers",
			Description:  fmt.Sprintf("Column %q has %d statistical outliers (%.1f%% of numeric values)", column, len(outliers), pct),
			AffectedRows: capRows(outliers),
			Severity:     severity,
			Column:       column,
		})
	}

	return issues
}

// checkCasing flags text values that repeat with differing case. Informational
// only: Low severity and no row evidence.
func checkCasing(headers []string, rows []model.RawRow) []model.ValidationIssue {
	var issues []model.ValidationIssue

	for _, column := range headers {
		var texts []string
		for _, row := range rows {
			s := tabular.String(row[column])
			if s != "" {
				texts = append(texts, s)
			}
		}
		if len(texts) < 5 {
			continue
		}

		counts := make(map[string]int)
		variants := make(map[string]map[string]struct{})
		for _, s := range texts {
			lower := strings.ToLower(s)
			counts[lower]++
			if variants[lower] == nil {
				variants[lower] = make(map[string]struct{})
			}
			variants[lower][s] = struct{}{}
		}

		inconsistent := 0
		for lower, forms := range variants {
			if len(forms) > 1 && counts[lower] > 1 {
				inconsistent++
			}
		}
		if inconsistent == 0 {
			continue
		}

		issues = append(issues, model.ValidationIssue{
			Type:        "Inconsistent Text Casing",
			Description: fmt.Sprintf("Column %q has inconsistent text casing for %d values", column, inconsistent),
			Severity:    model.ImportanceLow,
			Column:      column,
		})
	}

	return issues
}

type cell struct {
	value any
	row   int
}

func presentValues(column string, rows []model.RawRow) []cell {
	var values []cell
	for i, row := range rows {
		v := row[column]
		if tabular.Blank(v) {
			continue
		}
		values = append(values, cell{value: v, row: i + 1})
	}
	return values
}

// scoreIssues starts at 100 and subtracts a severity penalty per issue,
// scaled by min(2 x affected-row fraction, 1) when row evidence exists.
func scoreIssues(issues []model.ValidationIssue, totalRows int) int {
	score := 100.0

	for _, issue := range issues {
		var penalty float64
		switch issue.Severity {
		case model.ImportanceCritical:
			penalty = 25
		case model.ImportanceHigh:
			penalty = 15
		case model.ImportanceMedium:
			penalty = 8
		default:
			penalty = 3
		}

		if len(issue.AffectedRows) > 0 && totalRows > 0 {
			fraction := float64(len(issue.AffectedRows)) / float64(totalRows)
			penalty *= math.Min(fraction*2, 1)
		}

		score -= penalty
	}

	if score < 0 {
		return 0
	}
	return int(math.Round(score))
}

// recommend derives deterministic remediation advice from the issue set.
func recommend(issues []model.ValidationIssue) []model.Recommendation {
	var recs []model.Recommendation

	var criticalCount, highMissing int
	var hasMissing, hasDuplicates, hasFormat bool
	for _, issue := range issues {
		if issue.Severity == model.ImportanceCritical {
			criticalCount++
		}
		switch {
		case issue.Type == "Missing Values":
			hasMissing = true
			if issue.Severity == model.ImportanceHigh {
				highMissing++
			}
		case issue.Type == "Duplicate Rows":
			hasDuplicates = true
		case strings.Contains(issue.Type, "Format"):
			hasFormat = true
		}
	}

	if criticalCount > 0 {
		recs = append(recs, model.Recommendation{
			Action:      "Address Critical Issues",
			Description: fmt.Sprintf("Fix %d critical data quality issues before proceeding", criticalCount),
			Priority:    model.ImportanceCritical,
		})
	}
	if hasMissing {
		priority := model.ImportanceMedium
		if highMissing > 0 {
			priority = model.ImportanceHigh
		}
		recs = append(recs, model.Recommendation{
			Action:      "Handle Missing Values",
			Description: "Fill in missing values or remove incomplete rows",
			Priority:    priority,
		})
	}
	if hasDuplicates {
		recs = append(recs, model.Recommendation{
			Action:      "Remove Duplicates",
			Description: "Remove or consolidate duplicate rows to improve data accuracy",
			Priority:    model.ImportanceMedium,
		})
	}
	if hasFormat {
		recs = append(recs, model.Recommendation{
			Action:      "Fix Data Formats",
			Description: "Correct data format issues for numeric and date columns",
			Priority:    model.ImportanceMedium,
		})
	}
	if len(recs) == 0 {
		recs = append(recs, model.Recommendation{
			Action:      "Data Quality Good",
			Description: "Your data quality looks good! You can proceed with analysis",
			Priority:    model.ImportanceLow,
		})
	}

	return recs
}

// serializeRow produces a stable full-record key for duplicate detection.
func serializeRow(row model.RawRow) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(tabular.String(row[k]))
		b.WriteByte('|')
	}
	return b.String()
}

func capRows(rows []int) []int {
	if len(rows) > maxEvidenceRows {
		return rows[:maxEvidenceRows]
	}
	return rows
}
