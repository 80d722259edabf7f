package reconcile

import (
	"testing"

	"github.com/procurelens/procurelens/internal/model"
)

func TestDetectRole(t *testing.T) {
	tests := []struct {
		filename string
		want     model.FileRole
	}{
		{"vendor_master.csv", model.RoleVendors},
		{"pr_lines.csv", model.RolePRLines},
		{"pr_headers.csv", model.RolePR},
		{"po_lines.xlsx", model.RolePOLines},
		{"po_headers.xlsx", model.RolePO},
		{"invoice_lines.csv", model.RoleInvoiceLines},
		{"invoices.csv", model.RoleInvoice},
		{"grn_lines.csv", model.RoleGRNLines},
		{"grn_headers.csv", model.RoleGRN},
		{"three_way_results.csv", model.RoleMatching},
		{"matching_results.csv", model.RoleMatching},
		{"gst_validation.csv", model.RoleGST},
		{"payments.csv", model.RolePayment},
		{"Invoice_Lines.CSV", model.RoleInvoiceLines},
		{"random_data.csv", model.RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := DetectRole(tt.filename); got != tt.want {
				t.Errorf("DetectRole(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectRoleLinesBeforeParent(t *testing.T) {
	// A lines file must never be mistaken for its header file.
	if got := DetectRole("po_lines.csv"); got != model.RolePOLines {
		t.Fatalf("po_lines detected as %q", got)
	}
	if got := DetectRole("invoice_lines.csv"); got != model.RoleInvoiceLines {
		t.Fatalf("invoice_lines detected as %q", got)
	}
}
