package analyze

import (
	"fmt"
	"strings"
	"time"

	"github.com/procurelens/procurelens/internal/classify"
	"github.com/procurelens/procurelens/internal/model"
	"github.com/procurelens/procurelens/internal/tabular"
)

// Row-level defaults substituted for unparseable or absent values. Uploads
// are messy; a bad cell never fails the run.
const (
	defaultVendor = "Unknown Vendor"
	defaultStatus = "Pending"
)

// fieldResolver binds each analysis field to the best-guess header of one
// file. Resolution happens once per header set and is reused for every row.
type fieldResolver struct {
	date        string
	vendor      string
	item        string
	category    string
	amount      string
	status      string
	poNumber    string
	grnNumber   string
	invoiceDate string
	paymentDate string
}

// resolveFields picks, per field, the first header containing one of the
// field's indicator substrings. Indicator order encodes preference.
func resolveFields(headers []string) fieldResolver {
	find := func(indicators ...string) string {
		for _, indicator := range indicators {
			for _, h := range headers {
				if strings.Contains(strings.ToLower(h), indicator) {
					return h
				}
			}
		}
		return ""
	}

	return fieldResolver{
		date:        find("date", "time"),
		vendor:      find("vendor", "supplier", "party"),
		item:        find("item", "product", "desc", "material"),
		category:    find("cat", "group"),
		amount:      find("amount", "cost", "price", "total", "value"),
		status:      find("status", "state"),
		poNumber:    find("po", "purchase order"),
		grnNumber:   find("grn", "receipt"),
		invoiceDate: find("inv", "bill"),
		paymentDate: find("pay", "paid"),
	}
}

// normalize derives the immutable ProcessedRow for one raw record. now is
// injected so tests stay deterministic.
func (f fieldResolver) normalize(index int, row model.RawRow, now time.Time) model.ProcessedRow {
	item := tabular.String(row[f.item])
	if item == "" {
		item = fmt.Sprintf("Item %d", index+1)
	}

	vendor := tabular.String(row[f.vendor])
	if vendor == "" {
		vendor = defaultVendor
	}

	status := tabular.String(row[f.status])
	if status == "" {
		status = defaultStatus
	}

	category := model.Category(tabular.String(row[f.category]))
	if !knownCategory(category) {
		category = classify.Categorize(item)
	}

	amount, ok := tabular.Float(row[f.amount])
	if !ok || amount < 0 {
		amount = 0
	}

	date, ok := tabular.Time(row[f.date])
	if !ok {
		date = now
	}

	invoiceDate, ok := tabular.Time(row[f.invoiceDate])
	if !ok {
		invoiceDate = date
	}

	processed := model.ProcessedRow{
		ID:          fmt.Sprintf("ROW-%d", index),
		Date:        date,
		Vendor:      vendor,
		Item:        item,
		Category:    category,
		Amount:      amount,
		Status:      status,
		PONumber:    tabular.String(row[f.poNumber]),
		GRNNumber:   tabular.String(row[f.grnNumber]),
		InvoiceDate: invoiceDate,
	}

	if paid, ok := tabular.Time(row[f.paymentDate]); ok {
		processed.PaymentDate = &paid
	}

	return processed
}

func knownCategory(c model.Category) bool {
	for _, known := range model.Categories {
		if known == c {
			return true
		}
	}
	return false
}
