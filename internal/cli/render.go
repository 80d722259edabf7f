package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/procurelens/procurelens/internal/model"
)

// RenderDashboard writes the full analysis snapshot as a styled terminal
// report.
func RenderDashboard(w io.Writer, data *model.DashboardData) {
	fmt.Fprintln(w, FormatTitle("Procurement Analysis"))
	fmt.Fprintln(w)

	renderHealthScore(w, data.HealthScore)
	fmt.Fprintln(w)

	renderMatrix(w, data.Matrix)
	fmt.Fprintln(w)

	renderOutputs(w, data.Outputs)
	fmt.Fprintln(w)

	renderProblems(w, data.Problems)
	fmt.Fprintln(w)

	renderFinancial(w, data.Financial)

	if len(data.CriticalIssues) > 0 {
		fmt.Fprintln(w)
		renderIssues(w, data.CriticalIssues)
	}
}

func renderHealthScore(w io.Writer, score int) {
	style := SuccessStyle
	switch {
	case score < 40:
		style = ErrorStyle
	case score < 70:
		style = WarningStyle
	}
	fmt.Fprintf(w, "%s %s\n",
		BoldStyle.Render("Process Health:"),
		style.Render(fmt.Sprintf("%d/100", score)))
}

func renderMatrix(w io.Writer, matrix model.Matrix) {
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Category × Velocity Matrix"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	fmt.Fprintf(tw, "%s", TableHeaderStyle.Render("Category"))
	for _, velocity := range model.Velocities {
		fmt.Fprintf(tw, "\t%s", TableHeaderStyle.Render(string(velocity)))
	}
	fmt.Fprintln(tw)

	for _, category := range model.Categories {
		cells := matrix[category]
		fmt.Fprintf(tw, "%s", string(category))
		for _, velocity := range model.Velocities {
			cell := cells[velocity]
			if cell == nil || cell.Allocated == 0 {
				fmt.Fprintf(tw, "\t%s", SubtleStyle.Render("-"))
				continue
			}
			fmt.Fprintf(tw, "\t%s", renderCell(cell))
		}
		fmt.Fprintln(tw)
	}
}

func renderCell(cell *model.MatrixCell) string {
	text := fmt.Sprintf("%.1f%%", cell.Efficiency)
	switch cell.Status {
	case model.CellCritical:
		return ErrorStyle.Render(text)
	case model.CellWarning:
		return WarningStyle.Render(text)
	default:
		return SuccessStyle.Render(text)
	}
}

func renderOutputs(w io.Writer, outputs model.OutputCounts) {
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Processing Outputs"))
	fmt.Fprintf(w, "  %s %d   %s %d   %s %d   %s %d\n",
		SuccessStyle.Render("Normal:"), outputs.Normal,
		WarningStyle.Render("Delayed:"), outputs.Delayed,
		ErrorStyle.Render("Outliers:"), outputs.Outliers,
		SubtleStyle.Render("Exceptions:"), outputs.Exceptions)
}

func renderProblems(w io.Writer, problems model.ProblemData) {
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Process Problems"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	fmt.Fprintf(tw, "  Payment delays\t%d%% (avg %.1f days)\n", problems.PaymentDelayPercent, problems.AvgDelayDays)
	fmt.Fprintf(tw, "  Over-consumption\t%d%% (waste %s)\n", problems.OverConsumption, problems.WasteAmount)
	fmt.Fprintf(tw, "  Manual work\t%d%% (%.1f hrs/order)\n", problems.ManualWork, problems.ProcessingTime)
	fmt.Fprintf(tw, "  Vendor churn\t%d%% (quality %s)\n", problems.VendorChurn, problems.QualityScore)
}

func renderFinancial(w io.Writer, financial model.FinancialData) {
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Financial Impact"))
	fmt.Fprintf(w, "  Revenue loss %s   Cost increase %s   Time waste %s\n",
		ErrorStyle.Render(financial.RevenueLoss),
		WarningStyle.Render(financial.CostIncrease),
		SubtleStyle.Render(financial.TimeWaste))
}

func renderIssues(w io.Writer, issues []model.CriticalIssue) {
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Critical Issues"))
	for _, issue := range issues {
		icon := FormatWarning(issue.Title)
		if issue.Severity == model.IssueCritical {
			icon = FormatError(issue.Title)
		}
		fmt.Fprintf(w, "  %s\n    %s\n    %s\n", icon, issue.Description, SubtleStyle.Render(issue.Impact))
	}
}

// RenderAssessment writes a file assessment as a styled terminal report.
func RenderAssessment(w io.Writer, filename string, assessment *model.FileAssessment) {
	fmt.Fprintln(w, FormatTitle("File Assessment: "+filename))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %s   %s %s   %s %d/100\n",
		BoldStyle.Render("Sufficiency:"), renderSufficiency(assessment.DataSufficiency),
		BoldStyle.Render("Rendering:"), string(assessment.UIRendering),
		BoldStyle.Render("Quality:"), assessment.QualityScore)
	fmt.Fprintln(w)

	renderMappings(w, assessment.ColumnMappings)

	if len(assessment.MissingColumns) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Missing Columns"))
		for _, mc := range assessment.MissingColumns {
			fmt.Fprintf(w, "  %s %s: %s\n",
				renderImportance(mc.Importance), mc.StandardName, SubtleStyle.Render(mc.Description))
		}
	}

	if len(assessment.QualityIssues) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Data Quality Issues"))
		for _, issue := range assessment.QualityIssues {
			fmt.Fprintf(w, "  %s %s: %s\n",
				renderImportance(issue.Severity), issue.Type, issue.Description)
		}
	}

	if len(assessment.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Recommendations"))
		for _, rec := range assessment.Recommendations {
			fmt.Fprintf(w, "  %s %s: %s\n",
				renderImportance(rec.Priority), rec.Action, rec.Description)
		}
	}
}

func renderMappings(w io.Writer, mappings []model.ColumnMapping) {
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Column Mappings"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	fmt.Fprintf(tw, "  %s\t%s\t%s\n",
		TableHeaderStyle.Render("Original"),
		TableHeaderStyle.Render("Standard"),
		TableHeaderStyle.Render("Confidence"))
	fmt.Fprintf(tw, "  %s\t%s\t%s\n",
		strings.Repeat("-", 20), strings.Repeat("-", 20), strings.Repeat("-", 10))

	for _, m := range mappings {
		confidence := fmt.Sprintf("%.0f%%", m.Confidence*100)
		standard := m.StandardName
		if !m.Mapped() {
			standard = SubtleStyle.Render(standard)
			confidence = SubtleStyle.Render(confidence)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.OriginalName, standard, confidence)
	}
}

func renderSufficiency(s model.DataSufficiency) string {
	switch s {
	case model.SufficiencyComplete:
		return SuccessStyle.Render(string(s))
	case model.SufficiencyPartial:
		return WarningStyle.Render(string(s))
	default:
		return ErrorStyle.Render(string(s))
	}
}

func renderImportance(i model.Importance) string {
	switch i {
	case model.ImportanceCritical:
		return ErrorStyle.Render("[" + string(i) + "]")
	case model.ImportanceHigh:
		return ErrorStyle.Render("[" + string(i) + "]")
	case model.ImportanceMedium:
		return WarningStyle.Render("[" + string(i) + "]")
	default:
		return SubtleStyle.Render("[" + string(i) + "]")
	}
}
