package mapping

import (
	"reflect"
	"testing"

	"github.com/procurelens/procurelens/internal/model"
)

// cleanHeaders cover every required standard field with exact variation names.
var cleanHeaders = []string{
	"PO Number", "Vendor Name", "Item Description", "Quantity",
	"Unit Price", "Total Amount", "Order Date",
}

func TestMapColumnsExactMatches(t *testing.T) {
	mappings := MapColumns(cleanHeaders)

	wantStandard := []string{
		FieldPONumber, FieldVendorName, FieldItem, FieldQuantity,
		FieldUnitPrice, FieldTotalAmount, FieldOrderDate,
	}

	if len(mappings) != len(cleanHeaders) {
		t.Fatalf("got %d mappings, want %d", len(mappings), len(cleanHeaders))
	}

	for i, m := range mappings {
		if m.StandardName != wantStandard[i] {
			t.Errorf("header %q mapped to %q, want %q", m.OriginalName, m.StandardName, wantStandard[i])
		}
		if m.Confidence != 1.0 {
			t.Errorf("header %q confidence = %v, want 1.0", m.OriginalName, m.Confidence)
		}
	}
}

func TestMapColumnsFuzzyMatches(t *testing.T) {
	tests := []struct {
		header        string
		wantStandard  string
		minConfidence float64
	}{
		{"Supplier Details", FieldVendorName, 0.8},
		{"PO#", FieldPONumber, 1.0},
		{"Qty", FieldQuantity, 1.0},
		{"total_amount", FieldTotalAmount, 1.0},
		{"Expected Delivery", FieldDeliveryDate, 1.0},
		{"order status", FieldStatus, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			mappings := MapColumns([]string{tt.header})
			m := mappings[0]
			if m.StandardName != tt.wantStandard {
				t.Errorf("header %q mapped to %q, want %q", tt.header, m.StandardName, tt.wantStandard)
			}
			if m.Confidence < tt.minConfidence {
				t.Errorf("header %q confidence = %v, want >= %v", tt.header, m.Confidence, tt.minConfidence)
			}
		})
	}
}

func TestMapColumnsUnmatchedHeader(t *testing.T) {
	mappings := MapColumns([]string{"zzqx17"})
	m := mappings[0]
	if m.StandardName != model.StandardUnknown {
		t.Errorf("unmatched header mapped to %q, want %q", m.StandardName, model.StandardUnknown)
	}
	if m.Confidence != 0 {
		t.Errorf("unmatched header confidence = %v, want 0", m.Confidence)
	}
	if m.Mapped() {
		t.Error("unmatched header reported as mapped")
	}
}

func TestMapColumnsIdempotent(t *testing.T) {
	headers := []string{"PO Number", "Supplier Details", "zzqx17", "Total"}
	first := MapColumns(headers)
	second := MapColumns(headers)
	if !reflect.DeepEqual(first, second) {
		t.Error("MapColumns is not deterministic for identical input")
	}
}

func TestMatchConfidence(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		variation string
		want      float64
	}{
		{"exact", "vendor", "vendor", 1.0},
		{"containment forward", "vendor name ltd", "vendor name", 0.8},
		{"containment backward", "po", "po number", 0.8},
		{"no overlap", "zzqx", "vendor", 0},
		{"empty header", "", "vendor", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchConfidence(tt.header, tt.variation); got != tt.want {
				t.Errorf("matchConfidence(%q, %q) = %v, want %v", tt.header, tt.variation, got, tt.want)
			}
		})
	}
}

func TestMatchConfidenceWordOverlap(t *testing.T) {
	// "invoice number" vs "order number": one of two words overlaps.
	got := matchConfidence("invoice_number", "order number")
	if got != 0.5 {
		t.Errorf("word overlap score = %v, want 0.5", got)
	}
}

func TestSufficiency(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    model.DataSufficiency
	}{
		{
			name:    "all required fields present",
			headers: cleanHeaders,
			want:    model.SufficiencyComplete,
		},
		{
			name:    "criticals plus most required",
			headers: []string{"PO Number", "Vendor Name", "Total Amount", "Quantity", "Order Date"},
			want:    model.SufficiencyPartial,
		},
		{
			name:    "only critical fields",
			headers: []string{"PO Number", "Vendor Name", "Total Amount"},
			want:    model.SufficiencyInsufficient,
		},
		{
			name:    "missing a critical field",
			headers: []string{"Vendor Name", "Item Description", "Quantity", "Unit Price", "Total Amount", "Order Date"},
			want:    model.SufficiencyInsufficient,
		},
		{
			name:    "cryptic headers",
			headers: []string{"zz1", "zz2", "zz3"},
			want:    model.SufficiencyInsufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mappings := MapColumns(tt.headers)
			if got := Sufficiency(mappings); got != tt.want {
				t.Errorf("Sufficiency(%v) = %q, want %q", tt.headers, got, tt.want)
			}
		})
	}
}

func TestSufficiencyMonotonicity(t *testing.T) {
	// Adding a mapped header never lowers sufficiency.
	rank := map[model.DataSufficiency]int{
		model.SufficiencyInsufficient: 0,
		model.SufficiencyPartial:      1,
		model.SufficiencyComplete:     2,
	}

	headers := []string{"PO Number", "Vendor Name", "Total Amount", "Quantity", "Order Date"}
	base := Sufficiency(MapColumns(headers))

	grown := Sufficiency(MapColumns(append(headers, "Item Description", "Unit Price")))
	if rank[grown] < rank[base] {
		t.Errorf("sufficiency degraded from %q to %q after adding headers", base, grown)
	}
}

func TestUIDecision(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    model.UIRendering
	}{
		{
			name:    "complete and well mapped",
			headers: cleanHeaders,
			want:    model.UIStandard,
		},
		{
			name:    "insufficient data",
			headers: []string{"zz1", "zz2"},
			want:    model.UICustom,
		},
		{
			name:    "no headers",
			headers: nil,
			want:    model.UICustom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mappings := MapColumns(tt.headers)
			sufficiency := Sufficiency(mappings)
			if got := UIDecision(mappings, sufficiency); got != tt.want {
				t.Errorf("UIDecision = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindMissing(t *testing.T) {
	// Only the three critical fields map; everything else is missing.
	mappings := MapColumns([]string{"PO Number", "Vendor Name", "Total Amount"})
	missing := FindMissing(mappings)

	wantMissing := len(StandardFields) - 3
	if len(missing) != wantMissing {
		t.Fatalf("got %d missing columns, want %d", len(missing), wantMissing)
	}

	// Required fields come first, ranked by importance.
	for i := 1; i < len(missing); i++ {
		if missing[i-1].Importance.Rank() > missing[i].Importance.Rank() {
			t.Errorf("missing columns not sorted by importance at index %d", i)
		}
	}

	for _, mc := range missing {
		if mc.StandardName == FieldPONumber || mc.StandardName == FieldVendorName || mc.StandardName == FieldTotalAmount {
			t.Errorf("mapped field %q reported missing", mc.StandardName)
		}
	}
}

func TestFindMissingNoneWhenComplete(t *testing.T) {
	headers := append([]string{}, cleanHeaders...)
	headers = append(headers, "Delivery Date", "Status", "Category", "Budget Code", "Approval Status")
	missing := FindMissing(MapColumns(headers))
	if len(missing) != 0 {
		t.Errorf("got %d missing columns for full header set, want 0", len(missing))
	}
}
