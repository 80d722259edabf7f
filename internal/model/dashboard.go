package model

// CellStatus qualifies a matrix cell by its efficiency.
type CellStatus string

// Cell status constants: critical iff efficiency > 100, warning iff < 80.
const (
	CellNormal   CellStatus = "normal"
	CellWarning  CellStatus = "warning"
	CellCritical CellStatus = "critical"
)

// StatusForEfficiency derives the cell status from an efficiency percentage.
func StatusForEfficiency(efficiency float64) CellStatus {
	switch {
	case efficiency > 100:
		return CellCritical
	case efficiency < 80:
		return CellWarning
	default:
		return CellNormal
	}
}

// Product is a per-item rollup inside a matrix cell.
type Product struct {
	Name          string  `json:"name"`
	PurchaseCycle string  `json:"purchaseCycle"`
	Quantity      int     `json:"quantity"`
	Consumption   float64 `json:"consumption"`
	Cost          float64 `json:"cost"`
	Wastage       float64 `json:"wastage"`
}

// MatrixCell aggregates spend for one (category, velocity) pair. Efficiency
// is always recomputed from allocated/consumed, never carried independently.
type MatrixCell struct {
	Allocated  float64    `json:"allocated"`
	Consumed   float64    `json:"consumed"`
	Efficiency float64    `json:"efficiency"`
	Status     CellStatus `json:"status"`
	Products   []Product  `json:"products"`
}

// Matrix maps category -> velocity -> cell.
type Matrix map[Category]map[Velocity]*MatrixCell

// OutputCounts buckets processed records for the report header.
type OutputCounts struct {
	Outliers   int `json:"outliers"`
	Normal     int `json:"normal"`
	Delayed    int `json:"delayed"`
	Exceptions int `json:"exceptions"`
}

// ProblemData summarizes process problems as display-ready figures.
type ProblemData struct {
	WasteAmount         string  `json:"wasteAmount"`
	QualityScore        string  `json:"qualityScore"`
	PaymentDelayPercent int     `json:"paymentDelayPercent"`
	AvgDelayDays        float64 `json:"avgDelayDays"`
	OverConsumption     int     `json:"overConsumption"`
	ManualWork          int     `json:"manualWork"`
	ProcessingTime      float64 `json:"processingTime"`
	VendorChurn         int     `json:"vendorChurn"`
}

// FinancialData carries the financial impact banner strings.
type FinancialData struct {
	RevenueLoss  string `json:"revenueLoss"`
	CostIncrease string `json:"costIncrease"`
	TimeWaste    string `json:"timeWaste"`
}

// KPISeries carries the time-series arrays behind the KPI charts.
type KPISeries struct {
	Utilization []float64 `json:"utilization"`
	Cost        []float64 `json:"cost"`
	Wastage     []float64 `json:"wastage"`
}

// IssueSeverity qualifies a critical issue for display.
type IssueSeverity string

// Issue severity constants.
const (
	IssueCritical IssueSeverity = "critical"
	IssueWarning  IssueSeverity = "warning"
	IssueInfo     IssueSeverity = "info"
)

// CriticalIssue is one detected bottleneck area.
type CriticalIssue struct {
	Type            string        `json:"type"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Impact          string        `json:"impact"`
	Severity        IssueSeverity `json:"severity"`
	AutomationLevel string        `json:"automationLevel,omitempty"`
	Target          string        `json:"target,omitempty"`
}

// DashboardData is the complete analysis snapshot consumed by presentation
// layers. It is built wholesale per analysis run and never mutated afterwards.
// Field names and enumeration values are wire format.
type DashboardData struct {
	Matrix         Matrix          `json:"matrix"`
	Outputs        OutputCounts    `json:"outputs"`
	Problems       ProblemData     `json:"problems"`
	Financial      FinancialData   `json:"financial"`
	KPIs           KPISeries       `json:"kpis"`
	CriticalIssues []CriticalIssue `json:"criticalIssues,omitempty"`
	HealthScore    int             `json:"healthScore"`
	TotalRecords   int             `json:"totalRecords,omitempty"`
	RevenueImpact  float64         `json:"revenueImpact,omitempty"`
	AvgDelayDays   float64         `json:"avgDelayDays,omitempty"`
	MonthlyWaste   float64         `json:"monthlyWaste,omitempty"`
}

// ClampScore bounds a health score to [0, 100]. Both analysis paths use the
// same clamped formula.
func ClampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score + 0.5)
}
