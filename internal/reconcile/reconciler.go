package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/procurelens/procurelens/internal/analyze"
	"github.com/procurelens/procurelens/internal/classify"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/quality"
	"github.com/procurelens/procurelens/internal/tabular"
)

// FallbackRates estimate bottleneck counts when the corroborating file is
// absent. They are business heuristics, not derived invariants.
type FallbackRates struct {
	ManualProcess float64
	Delayed       float64
	Outlier       float64
}

// DefaultFallbackRates are the stock estimates applied without better data.
var DefaultFallbackRates = FallbackRates{
	ManualProcess: 0.75,
	Delayed:       0.15,
	Outlier:       0.05,
}

// Consumption credit for an invoice line whose item never shows up in the
// goods-receipt lines (or when no GRN lines were uploaded at all).
const unconfirmedConsumption = 0.85

// maxParseWorkers bounds the parse fan-out; files are parsed independently
// and merged by a single reduction afterwards.
const maxParseWorkers = 4

// Reconciler runs the multi-file pipeline.
type Reconciler struct {
	logger *slog.Logger
	rates  FallbackRates
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithFallbackRates overrides the estimate ratios used when a supporting
// file is missing.
func WithFallbackRates(rates FallbackRates) Option {
	return func(r *Reconciler) { r.rates = rates }
}

// New creates a Reconciler.
func New(logger *slog.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		logger: logger,
		rates:  DefaultFallbackRates,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Analyze parses every file, classifies it by filename, and derives the
// cross-file dashboard snapshot. Any unparseable file rejects the whole
// operation; a missing supporting file only degrades to estimates.
func (r *Reconciler) Analyze(ctx context.Context, files []model.FileData) (*model.DashboardData, error) {
	tables, err := r.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	byRole := make(map[model.FileRole]*tabular.Table)
	for i, table := range tables {
		role := DetectRole(files[i].Filename)
		r.logger.Debug("classified uploaded file",
			"filename", files[i].Filename,
			"role", role,
			"rows", len(table.Rows))
		byRole[role] = table
	}

	return r.analyzeTables(byRole), nil
}

// parseAll decodes the files with a bounded worker pool. There is no shared
// mutable state until the merge step.
func (r *Reconciler) parseAll(ctx context.Context, files []model.FileData) ([]*tabular.Table, error) {
	tables := make([]*tabular.Table, len(files))
	errs := make([]error, len(files))

	sem := make(chan struct{}, maxParseWorkers)
	var wg sync.WaitGroup

	for i, file := range files {
		wg.Add(1)
		go func(idx int, f model.FileData) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			table, parseErr := tabular.Parse(f.Filename, f.Content)
			if parseErr != nil {
				errs[idx] = fmt.Errorf("parse %s: %w", f.Filename, parseErr)
				return
			}
			tables[idx] = table
		}(i, file)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return tables, nil
}

func (r *Reconciler) analyzeTables(byRole map[model.FileRole]*tabular.Table) *model.DashboardData {
	rowsOf := func(role model.FileRole) []model.RawRow {
		if t, ok := byRole[role]; ok {
			return t.Rows
		}
		return nil
	}

	invoices := rowsOf(model.RoleInvoice)
	invoiceLines := rowsOf(model.RoleInvoiceLines)
	grnLines := rowsOf(model.RoleGRNLines)
	matching := rowsOf(model.RoleMatching)
	gst := rowsOf(model.RoleGST)
	payment := rowsOf(model.RolePayment)

	totalRecords := len(invoices) + len(rowsOf(model.RolePO)) +
		len(rowsOf(model.RolePR)) + len(rowsOf(model.RoleGRN))

	// Estimates fall back to the invoice count; when no invoice header file
	// was uploaded the invoice lines stand in for it.
	invoiceCount := len(invoices)
	if invoiceCount == 0 {
		invoiceCount = len(invoiceLines)
	}

	receivedItems := receiptConfirmedItems(grnLines)

	var totalSpend, totalConsumed float64
	frequency := classify.NewFrequencyCounter()
	itemAmounts := make(map[string]float64)
	itemCategories := make(map[string]model.Category)

	for i, line := range invoiceLines {
		amount := lineAmount(line)
		totalSpend += amount

		item := lineItem(line, i)
		frequency.Observe(item)
		itemAmounts[item] += amount
		if _, ok := itemCategories[item]; !ok {
			itemCategories[item] = classify.Categorize(item)
		}

		credit := unconfirmedConsumption
		if receivedItems[strings.ToLower(item)] {
			credit = 1.0
		}
		totalConsumed += amount * credit
	}

	manualProcessCount := r.manualProcessCount(matching, invoiceCount)
	delayedCount := r.delayedCount(payment, invoiceCount)
	outlierCount := r.outlierCount(gst, invoiceCount)

	matrix := buildMatrix(frequency, itemAmounts, itemCategories, receivedItems)

	base := totalRecords
	if base == 0 {
		base = invoiceCount
	}
	manualRatio := ratio(manualProcessCount, base)
	delayRatio := ratio(delayedCount, base)
	outlierRatio := ratio(outlierCount, base)

	avgDelayDays := 0.0
	if delayedCount > 0 {
		avgDelayDays = 15
	}
	monthlyWaste := totalSpend * 0.2
	revenueImpact := monthlyWaste * 0.5

	overConsumption := 0
	if totalSpend > 0 {
		overConsumption = int(math.Round((totalSpend - totalConsumed) / totalSpend * 100))
	}

	var qualityReport model.ValidationResult
	if t, ok := byRole[model.RoleInvoiceLines]; ok {
		qualityReport = quality.Validate(t.Headers, t.Rows)
	} else {
		qualityReport = quality.Validate(nil, nil)
	}

	data := &model.DashboardData{
		Matrix: matrix,
		Outputs: model.OutputCounts{
			Outliers:   outlierCount,
			Normal:     maxInt(0, totalRecords-delayedCount-outlierCount),
			Delayed:    delayedCount,
			Exceptions: manualProcessCount,
		},
		Problems: model.ProblemData{
			PaymentDelayPercent: int(math.Round(delayRatio * 100)),
			AvgDelayDays:        avgDelayDays,
			OverConsumption:     overConsumption,
			WasteAmount:         model.RupeesK(monthlyWaste),
			ManualWork:          int(math.Round(manualRatio * 100)),
			ProcessingTime:      math.Ceil(float64(manualProcessCount) * 0.1),
			VendorChurn:         15,
			QualityScore:        fmt.Sprintf("%.1f/10", float64(qualityReport.QualityScore)/10),
		},
		Financial: model.FinancialData{
			RevenueLoss:  model.RupeesLakh(revenueImpact),
			CostIncrease: "+15%",
			TimeWaste:    fmt.Sprintf("%dhrs", int(math.Round(float64(manualProcessCount)*0.5))),
		},
		HealthScore:    model.ClampScore(100 - 40*manualRatio - 30*delayRatio - 20*outlierRatio),
		KPIs:           kpiSeries(totalSpend),
		CriticalIssues: r.criticalIssues(manualProcessCount, invoiceCount, totalRecords, matching, gst, payment),
		TotalRecords:   totalRecords,
		RevenueImpact:  revenueImpact,
		AvgDelayDays:   avgDelayDays,
		MonthlyWaste:   monthlyWaste,
	}

	r.logger.Info("multi-file reconciliation complete",
		"files", len(byRole),
		"total_records", totalRecords,
		"total_spend", totalSpend,
		"manual", manualProcessCount,
		"delayed", delayedCount,
		"outliers", outlierCount,
		"health_score", data.HealthScore)

	return data
}

// manualProcessCount counts manual or pending three-way matches, or
// estimates from the invoice count when no matching file was uploaded.
func (r *Reconciler) manualProcessCount(matching []model.RawRow, invoiceCount int) int {
	if len(matching) == 0 {
		return int(math.Round(r.rates.ManualProcess * float64(invoiceCount)))
	}
	count := 0
	for _, row := range matching {
		status := strings.ToLower(tabular.String(row["match_status"]))
		if status == "manual" || status == "pending" {
			count++
		}
	}
	return count
}

// delayedCount counts delayed payments, or estimates when no payment file
// was uploaded.
func (r *Reconciler) delayedCount(payment []model.RawRow, invoiceCount int) int {
	if len(payment) == 0 {
		return int(math.Round(r.rates.Delayed * float64(invoiceCount)))
	}
	count := 0
	for _, row := range payment {
		status := strings.ToLower(tabular.String(row["status"]))
		delay, _ := tabular.Float(row["payment_delay"])
		if status == "delayed" || delay > 0 {
			count++
		}
	}
	return count
}

// outlierCount counts failed or manual GST validations, or estimates when no
// GST file was uploaded.
func (r *Reconciler) outlierCount(gst []model.RawRow, invoiceCount int) int {
	if len(gst) == 0 {
		return int(math.Round(r.rates.Outlier * float64(invoiceCount)))
	}
	count := 0
	for _, row := range gst {
		status := strings.ToLower(tabular.String(row["validation_status"]))
		if status == "failed" || status == "manual" {
			count++
		}
	}
	return count
}

func buildMatrix(frequency *classify.FrequencyCounter, amounts map[string]float64, categories map[string]model.Category, received map[string]bool) model.Matrix {
	matrix := make(model.Matrix)

	for _, item := range frequency.Items() {
		freq := frequency.Count(item)
		velocity := classify.VelocityFor(freq)
		category := categories[item]
		allocated := amounts[item]

		credit := unconfirmedConsumption
		if received[strings.ToLower(item)] {
			credit = 1.0
		}
		consumed := allocated * credit

		if matrix[category] == nil {
			matrix[category] = make(map[model.Velocity]*model.MatrixCell)
		}
		cell := matrix[category][velocity]
		if cell == nil {
			cell = &model.MatrixCell{}
			matrix[category][velocity] = cell
		}

		cell.Allocated += allocated
		cell.Consumed += consumed
		cell.Products = append(cell.Products, model.Product{
			Name:          item,
			PurchaseCycle: classify.PurchaseCycle(freq),
			Quantity:      freq,
			Consumption:   math.Round(float64(freq)*0.9*10) / 10,
			Cost:          allocated,
			Wastage:       wastagePercent(allocated, consumed),
		})
	}

	analyze.FinalizeCells(matrix)
	return matrix
}

// criticalIssues emits one issue per bottleneck area whose computed ratio
// crosses its trigger threshold.
func (r *Reconciler) criticalIssues(manualCount, invoiceCount, totalRecords int, matching, gst, payment []model.RawRow) []model.CriticalIssue {
	var issues []model.CriticalIssue

	if float64(manualCount) > float64(invoiceCount)*0.5 && totalRecords > 0 {
		issues = append(issues, model.CriticalIssue{
			Type:            "Invoice Receipt",
			Title:           fmt.Sprintf("%d%% Manual", int(math.Round(ratio(manualCount, totalRecords)*100))),
			Description:     fmt.Sprintf("Takes %d days/invoice", int(math.Ceil(float64(manualCount)*0.1))),
			Impact:          "Target: 5% Manual",
			Severity:        model.IssueCritical,
			AutomationLevel: "15%",
			Target:          "5% Manual",
		})
	}

	if len(matching) > 0 {
		manualMatching := 0
		for _, row := range matching {
			matchStatus := strings.ToLower(tabular.String(row["match_status"]))
			matchType := strings.ToLower(tabular.String(row["match_type"]))
			if matchStatus == "manual" || matchType == "manual" {
				manualMatching++
			}
		}
		if float64(manualMatching) > float64(len(matching))*0.5 {
			pct := int(math.Round(ratio(manualMatching, len(matching)) * 100))
			issues = append(issues, model.CriticalIssue{
				Type:            "3-Way Matching",
				Title:           fmt.Sprintf("%d%% Manual", pct),
				Description:     "High error rate",
				Impact:          "Target: 5% Manual",
				Severity:        model.IssueWarning,
				AutomationLevel: fmt.Sprintf("%d%%", 100-pct),
				Target:          "5% Manual",
			})
		}
	}

	if len(gst) > 0 {
		manualGST := 0
		for _, row := range gst {
			status := strings.ToLower(tabular.String(row["validation_status"]))
			method := strings.ToLower(tabular.String(row["validation_method"]))
			if status == "manual" || method == "manual" {
				manualGST++
			}
		}
		if manualGST > 0 {
			issues = append(issues, model.CriticalIssue{
				Type:            "GST Validation",
				Title:           "Manual Checks",
				Description:     "Compliance risk",
				Impact:          "Target: AI Automated",
				Severity:        model.IssueWarning,
				AutomationLevel: "40%",
				Target:          "AI Automated",
			})
		}
	}

	if len(payment) > 0 {
		delayed := 0
		for _, row := range payment {
			status := strings.ToLower(tabular.String(row["status"]))
			delay, _ := tabular.Float(row["payment_delay"])
			if status == "delayed" || delay > 0 {
				delayed++
			}
		}
		if delayed > 0 {
			issues = append(issues, model.CriticalIssue{
				Type:            "Payment Auth",
				Title:           "Delayed",
				Description:     "Vendor trust erosion",
				Impact:          "Target: On-Time",
				Severity:        model.IssueCritical,
				AutomationLevel: "20%",
				Target:          "On-Time",
			})
		}
	}

	return issues
}

// receiptConfirmedItems collects the lowercased item names present in the
// GRN lines.
func receiptConfirmedItems(grnLines []model.RawRow) map[string]bool {
	received := make(map[string]bool, len(grnLines))
	for i, line := range grnLines {
		received[strings.ToLower(lineItem(line, i))] = true
	}
	return received
}

// lineAmount resolves a line's amount by trying the known field names in
// order.
func lineAmount(row model.RawRow) float64 {
	for _, key := range []string{"amount", "line_amount", "total"} {
		if f, ok := tabular.Float(row[key]); ok {
			return f
		}
	}
	return 0
}

// lineItem resolves a line's item name, falling back to a positional label.
func lineItem(row model.RawRow, index int) string {
	for _, key := range []string{"item_name", "description"} {
		if s := tabular.String(row[key]); s != "" {
			return s
		}
	}
	if id := tabular.String(row["id"]); id != "" {
		return "Item " + id
	}
	return fmt.Sprintf("Item %d", index+1)
}

func wastagePercent(allocated, consumed float64) float64 {
	if allocated == 0 {
		return 0
	}
	return math.Round((allocated - consumed) / allocated * 100)
}

func kpiSeries(totalSpend float64) model.KPISeries {
	cost := make([]float64, 7)
	for i := range cost {
		cost[i] = math.Round(totalSpend / 30 * float64(i+1))
	}
	return model.KPISeries{
		Utilization: []float64{65, 70, 75, 72, 80, 85, 78},
		Cost:        cost,
		Wastage:     []float64{5, 8, 4, 6, 5, 7, 4},
	}
}

func ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
