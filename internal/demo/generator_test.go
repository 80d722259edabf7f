package demo

import (
	"reflect"
	"testing"

	"github.com/procurelens/procurelens/internal/model"
)

func TestGenerateDeterministic(t *testing.T) {
	first := NewGenerator(42).Generate(PeriodMonthly)
	second := NewGenerator(42).Generate(PeriodMonthly)

	if !reflect.DeepEqual(first, second) {
		t.Error("Same seed and period produced different snapshots")
	}

	different := NewGenerator(43).Generate(PeriodMonthly)
	if reflect.DeepEqual(first.Outputs, different.Outputs) {
		t.Error("Different seeds produced identical output counts")
	}
}

func TestGenerateMatrixShape(t *testing.T) {
	data := NewGenerator(1).Generate(PeriodWeekly)

	if len(data.Matrix) != len(model.Categories) {
		t.Fatalf("Matrix has %d categories, want %d", len(data.Matrix), len(model.Categories))
	}
	for _, category := range model.Categories {
		cells, ok := data.Matrix[category]
		if !ok {
			t.Fatalf("Matrix missing category %q", category)
		}
		if len(cells) != len(model.Velocities) {
			t.Errorf("Category %q has %d velocity cells, want %d", category, len(cells), len(model.Velocities))
		}
		for velocity, cell := range cells {
			if cell.Allocated <= 0 {
				t.Errorf("%s/%s allocated %v, want > 0", category, velocity, cell.Allocated)
			}
			if cell.Status != model.StatusForEfficiency(cell.Efficiency) {
				t.Errorf("%s/%s status %q inconsistent with efficiency %v", category, velocity, cell.Status, cell.Efficiency)
			}
			if len(cell.Products) == 0 {
				t.Errorf("%s/%s has no products", category, velocity)
			}
		}
	}
}

func TestGeneratePeriodFigures(t *testing.T) {
	tests := []struct {
		period      Period
		wasteAmount string
		revenueLoss string
		kpiPoints   int
		healthScore int
	}{
		{period: PeriodDaily, wasteAmount: "₹1.8L", revenueLoss: "₹8.2L", kpiPoints: 24, healthScore: 42},
		{period: PeriodWeekly, wasteAmount: "₹2.8L", revenueLoss: "₹12.4L", kpiPoints: 7, healthScore: 38},
		{period: PeriodMonthly, wasteAmount: "₹4.2L", revenueLoss: "₹18.6L", kpiPoints: 30, healthScore: 38},
		{period: PeriodYearly, wasteAmount: "₹3.2L", revenueLoss: "₹15.2L", kpiPoints: 12, healthScore: 38},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			data := NewGenerator(7).Generate(tt.period)

			if data.Problems.WasteAmount != tt.wasteAmount {
				t.Errorf("WasteAmount = %q, want %q", data.Problems.WasteAmount, tt.wasteAmount)
			}
			if data.Financial.RevenueLoss != tt.revenueLoss {
				t.Errorf("RevenueLoss = %q, want %q", data.Financial.RevenueLoss, tt.revenueLoss)
			}
			if len(data.KPIs.Utilization) != tt.kpiPoints {
				t.Errorf("Utilization has %d points, want %d", len(data.KPIs.Utilization), tt.kpiPoints)
			}
			if data.HealthScore != tt.healthScore {
				t.Errorf("HealthScore = %d, want %d", data.HealthScore, tt.healthScore)
			}
		})
	}
}

func TestGenerateUnknownPeriodDefaultsToMonthly(t *testing.T) {
	data := NewGenerator(7).Generate(Period("quarterly"))

	if data.Problems.WasteAmount != "₹4.2L" {
		t.Errorf("Unknown period produced %q, want the monthly figures", data.Problems.WasteAmount)
	}
}
