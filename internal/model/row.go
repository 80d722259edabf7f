package model

import "time"

// RawRow is one parsed spreadsheet record: an open mapping from the original
// column name to the cell value (string, float64, time.Time or nil). It only
// exists between parsing and normalization.
type RawRow map[string]any

// ProcessedRow is a normalized procurement transaction derived once from a
// RawRow. It is immutable after creation; parse failures never propagate and
// are replaced by documented defaults instead.
type ProcessedRow struct {
	Date        time.Time
	InvoiceDate time.Time
	PaymentDate *time.Time
	ID          string
	Vendor      string
	Item        string
	Status      string
	PONumber    string
	GRNNumber   string
	Category    Category
	Amount      float64
}

// HasPO reports whether the row carries a purchase order reference.
func (r *ProcessedRow) HasPO() bool { return r.PONumber != "" }

// HasGRN reports whether the row carries a goods receipt reference.
func (r *ProcessedRow) HasGRN() bool { return r.GRNNumber != "" }

// FileData is one uploaded file at the analysis boundary: a name used for
// role detection plus its raw content.
type FileData struct {
	Filename string
	Content  []byte
}

// FileRole identifies which procurement document a file holds. Detection is
// purely filename based; a misnamed file lands in RoleUnknown.
type FileRole string

// File role constants.
const (
	RoleVendors      FileRole = "vendors"
	RolePR           FileRole = "pr"
	RolePRLines      FileRole = "pr_lines"
	RolePO           FileRole = "po"
	RolePOLines      FileRole = "po_lines"
	RoleInvoice      FileRole = "invoice"
	RoleInvoiceLines FileRole = "invoice_lines"
	RoleGRN          FileRole = "grn"
	RoleGRNLines     FileRole = "grn_lines"
	RoleMatching     FileRole = "matching"
	RoleGST          FileRole = "gst"
	RolePayment      FileRole = "payment"
	RoleUnknown      FileRole = "unknown"
)
