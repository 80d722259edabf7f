// Package reconcile joins a set of related procurement exports (vendor
// master, POs, invoices, GRNs, matching, GST, payments) into one dashboard
// snapshot, estimating bottleneck indicators when a supporting file is
// absent.
package reconcile

import (
	"strings"

	"github.com/procurelens/procurelens/internal/model"
)

// rolePattern pairs a filename substring with the role it indicates.
// Lines-variants are checked before their parents so "po_lines" is never
// misread as "po".
var rolePatterns = []struct {
	substring string
	role      model.FileRole
}{
	{"vendor", model.RoleVendors},
	{"pr_lines", model.RolePRLines},
	{"pr", model.RolePR},
	{"po_lines", model.RolePOLines},
	{"po", model.RolePO},
	{"invoice_lines", model.RoleInvoiceLines},
	{"invoice", model.RoleInvoice},
	{"grn_lines", model.RoleGRNLines},
	{"grn", model.RoleGRN},
	{"three_way", model.RoleMatching},
	{"matching", model.RoleMatching},
	{"gst", model.RoleGST},
	{"payment", model.RolePayment},
}

// DetectRole classifies a file by its name alone. A misnamed file lands in
// RoleUnknown and is excluded from targeted aggregation.
func DetectRole(filename string) model.FileRole {
	name := strings.ToLower(filename)
	for _, p := range rolePatterns {
		if strings.Contains(name, p.substring) {
			return p.role
		}
	}
	return model.RoleUnknown
}
