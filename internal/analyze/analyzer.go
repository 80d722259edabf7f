// Package analyze turns one parsed tabular file into a complete dashboard
// snapshot: normalized rows, the category x velocity matrix, and the derived
// problem, financial and health metrics.
package analyze

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/procurelens/procurelens/internal/classify"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/quality"
)

// Fixed heuristics of the single-file path. The outlier threshold is a
// documented business constant, not a statistical boundary.
const (
	delayThresholdDays = 30
	outlierAmount      = 50000

	// Consumption credit for a row without receipt confirmation.
	unconfirmedConsumption = 0.8

	revenueLossRate = 0.12
	wasteRate       = 0.05
)

// utilization and wastage KPI baselines are fixed display series.
var (
	kpiUtilization = []float64{65, 70, 75, 72, 80, 85, 78}
	kpiWastage     = []float64{5, 8, 4, 6, 5, 7, 4}
)

// Analyzer runs the single-file pipeline. The zero value is not usable;
// construct with New.
type Analyzer struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock fixes the analyzer's notion of now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New creates an Analyzer.
func New(logger *slog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces the dashboard snapshot for one file's rows. Zero rows
// yield a valid degenerate snapshot, never an error; per-row anomalies are
// absorbed by documented defaults during normalization.
func (a *Analyzer) Analyze(headers []string, rows []model.RawRow) *model.DashboardData {
	now := a.now()
	resolver := resolveFields(headers)

	processed := make([]model.ProcessedRow, 0, len(rows))
	for i, raw := range rows {
		processed = append(processed, resolver.normalize(i, raw, now))
	}

	var (
		totalSpend   float64
		manualCount  int
		delayedCount int
		outlierCount int
		delayDaysSum float64
	)
	frequency := classify.NewFrequencyCounter()
	unconfirmedSpend := 0.0

	for _, row := range processed {
		totalSpend += row.Amount
		frequency.Observe(row.Item)

		// Missing PO or GRN is the manual-process proxy
		if !row.HasPO() || !row.HasGRN() {
			manualCount++
		}
		if !row.HasGRN() {
			unconfirmedSpend += row.Amount
		}

		if days := paymentGapDays(row, now); days > delayThresholdDays {
			delayedCount++
			delayDaysSum += days
		}

		if row.Amount > outlierAmount {
			outlierCount++
		}
	}

	matrix := a.buildMatrix(processed, frequency)
	report := quality.Validate(headers, rows)

	total := len(processed)
	manualRatio := ratio(manualCount, total)
	delayRatio := ratio(delayedCount, total)
	outlierRatio := ratio(outlierCount, total)

	avgDelay := 0.0
	if delayedCount > 0 {
		avgDelay = math.Round(delayDaysSum/float64(delayedCount)*10) / 10
	}

	overConsumption := 0
	if totalSpend > 0 {
		overConsumption = int(math.Round(unconfirmedSpend / totalSpend * 100))
	}

	data := &model.DashboardData{
		Matrix: matrix,
		Outputs: model.OutputCounts{
			Outliers:   outlierCount,
			Normal:     maxInt(0, total-delayedCount-outlierCount),
			Delayed:    delayedCount,
			Exceptions: manualCount,
		},
		Problems: model.ProblemData{
			PaymentDelayPercent: int(math.Round(delayRatio * 100)),
			AvgDelayDays:        avgDelay,
			OverConsumption:     overConsumption,
			WasteAmount:         model.RupeesK(totalSpend * wasteRate),
			ManualWork:          int(math.Round(manualRatio * 100)),
			ProcessingTime:      7,
			VendorChurn:         15,
			QualityScore:        fmt.Sprintf("%.1f/10", float64(report.QualityScore)/10),
		},
		Financial: model.FinancialData{
			RevenueLoss:  model.RupeesLakh(totalSpend * revenueLossRate),
			CostIncrease: "+15%",
			TimeWaste:    fmt.Sprintf("%dhrs", int(math.Round(float64(manualCount)*0.5))),
		},
		HealthScore:  model.ClampScore(100 - 40*manualRatio - 30*delayRatio - 20*outlierRatio),
		KPIs:         kpiSeries(totalSpend),
		TotalRecords: total,
	}

	a.logger.Info("single-file analysis complete",
		"rows", total,
		"total_spend", totalSpend,
		"manual", manualCount,
		"delayed", delayedCount,
		"outliers", outlierCount,
		"health_score", data.HealthScore)

	return data
}

// buildMatrix buckets every distinct item by category and velocity, summing
// nominal spend into allocated and receipt-confirmed spend into consumed.
// Consumption is deterministic: rows without a GRN earn reduced credit.
func (a *Analyzer) buildMatrix(rows []model.ProcessedRow, frequency *classify.FrequencyCounter) model.Matrix {
	type itemStats struct {
		allocated float64
		consumed  float64
		category  model.Category
	}
	stats := make(map[string]*itemStats)
	for _, row := range rows {
		s, ok := stats[row.Item]
		if !ok {
			s = &itemStats{category: row.Category}
			stats[row.Item] = s
		}
		s.allocated += row.Amount
		credit := 1.0
		if !row.HasGRN() {
			credit = unconfirmedConsumption
		}
		s.consumed += row.Amount * credit
	}

	matrix := make(model.Matrix)
	for _, item := range frequency.Items() {
		s := stats[item]
		freq := frequency.Count(item)
		velocity := classify.VelocityFor(freq)

		if matrix[s.category] == nil {
			matrix[s.category] = make(map[model.Velocity]*model.MatrixCell)
		}
		cell := matrix[s.category][velocity]
		if cell == nil {
			cell = &model.MatrixCell{}
			matrix[s.category][velocity] = cell
		}

		cell.Allocated += s.allocated
		cell.Consumed += s.consumed
		cell.Products = append(cell.Products, model.Product{
			Name:          item,
			PurchaseCycle: classify.PurchaseCycle(freq),
			Quantity:      freq,
			Consumption:   math.Round(float64(freq)*0.9*10) / 10,
			Cost:          s.allocated,
			Wastage:       wastagePercent(s.allocated, s.consumed),
		})
	}

	FinalizeCells(matrix)
	return matrix
}

// FinalizeCells recomputes efficiency and status for every cell from its
// current allocated/consumed totals.
func FinalizeCells(matrix model.Matrix) {
	for _, velocities := range matrix {
		for _, cell := range velocities {
			cell.Efficiency = Efficiency(cell.Allocated, cell.Consumed)
			cell.Status = model.StatusForEfficiency(cell.Efficiency)
		}
	}
}

// Efficiency is consumed over allocated as a percentage, one decimal.
func Efficiency(allocated, consumed float64) float64 {
	if allocated == 0 {
		return 0
	}
	return math.Round(consumed/allocated*1000) / 10
}

func wastagePercent(allocated, consumed float64) float64 {
	if allocated == 0 {
		return 0
	}
	return math.Round((allocated - consumed) / allocated * 100)
}

// paymentGapDays measures the payment-to-invoice gap, or the age of an
// unpaid invoice relative to now.
func paymentGapDays(row model.ProcessedRow, now time.Time) float64 {
	reference := row.InvoiceDate
	if reference.IsZero() {
		reference = row.Date
	}
	end := now
	if row.PaymentDate != nil {
		end = *row.PaymentDate
	}
	return end.Sub(reference).Hours() / 24
}

func kpiSeries(totalSpend float64) model.KPISeries {
	cost := make([]float64, 7)
	for i := range cost {
		cost[i] = math.Round(totalSpend / 30 * float64(i+1))
	}
	return model.KPISeries{
		Utilization: append([]float64(nil), kpiUtilization...),
		Cost:        cost,
		Wastage:     append([]float64(nil), kpiWastage...),
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
