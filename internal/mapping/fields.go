// Package mapping resolves arbitrary spreadsheet headers to a fixed catalog
// of standard procurement fields using fuzzy name matching.
package mapping

// StandardField describes one entry in the fixed procurement field catalog.
type StandardField struct {
	Name        string
	Description string
	DataType    string
	Variations  []string
	Required    bool
}

// Canonical field names referenced throughout the pipeline.
const (
	FieldPONumber     = "PO_Number"
	FieldVendorName   = "Vendor_Name"
	FieldItem         = "Item_Description"
	FieldQuantity     = "Quantity"
	FieldUnitPrice    = "Unit_Price"
	FieldTotalAmount  = "Total_Amount"
	FieldOrderDate    = "Order_Date"
	FieldDeliveryDate = "Delivery_Date"
	FieldStatus       = "Status"
	FieldCategory     = "Category"
	FieldBudgetCode   = "Budget_Code"
	FieldApproval     = "Approval_Status"
)

// CriticalFields are the three fields without which no analysis is possible.
var CriticalFields = []string{FieldPONumber, FieldVendorName, FieldTotalAmount}

// StandardFields is the fixed catalog, in a stable order that doubles as the
// match tie-break: the first field reaching the best score wins.
var StandardFields = []StandardField{
	{
		Name:        FieldPONumber,
		Variations:  []string{"po number", "purchase order", "po#", "order number", "po id", "purchase order number", "po_number", "ponumber"},
		Required:    true,
		DataType:    "string",
		Description: "Unique purchase order identifier",
	},
	{
		Name:        FieldVendorName,
		Variations:  []string{"vendor", "supplier", "vendor name", "supplier name", "company", "vendor company", "vendor_name", "vendorname"},
		Required:    true,
		DataType:    "string",
		Description: "Name of the vendor or supplier",
	},
	{
		Name:        FieldItem,
		Variations:  []string{"item", "description", "product", "item description", "product description", "goods", "item_description"},
		Required:    true,
		DataType:    "string",
		Description: "Description of the purchased item or service",
	},
	{
		Name:        FieldQuantity,
		Variations:  []string{"qty", "quantity", "units", "count", "number of items"},
		Required:    true,
		DataType:    "number",
		Description: "Quantity of items ordered",
	},
	{
		Name:        FieldUnitPrice,
		Variations:  []string{"unit price", "price", "cost", "unit cost", "rate", "price per unit", "unit_price", "unitprice"},
		Required:    true,
		DataType:    "number",
		Description: "Price per unit of the item",
	},
	{
		Name:        FieldTotalAmount,
		Variations:  []string{"total", "total amount", "total cost", "amount", "value", "total price", "total_amount", "totalamount"},
		Required:    true,
		DataType:    "number",
		Description: "Total cost for the line item",
	},
	{
		Name:        FieldOrderDate,
		Variations:  []string{"order date", "date", "purchase date", "po date", "created date", "order created", "order_date", "orderdate"},
		Required:    true,
		DataType:    "date",
		Description: "Date when the purchase order was created",
	},
	{
		Name:        FieldDeliveryDate,
		Variations:  []string{"delivery date", "due date", "expected date", "ship date", "delivery", "expected delivery", "delivery_date"},
		Required:    false,
		DataType:    "date",
		Description: "Expected or actual delivery date",
	},
	{
		Name:        FieldStatus,
		Variations:  []string{"status", "state", "condition", "order status", "po status"},
		Required:    false,
		DataType:    "string",
		Description: "Current status of the purchase order",
	},
	{
		Name:        FieldCategory,
		Variations:  []string{"category", "type", "classification", "group", "department", "item category"},
		Required:    false,
		DataType:    "string",
		Description: "Category or classification of the purchased item",
	},
	{
		Name:        FieldBudgetCode,
		Variations:  []string{"budget", "budget code", "cost center", "department code", "account code"},
		Required:    false,
		DataType:    "string",
		Description: "Budget or cost center code for accounting",
	},
	{
		Name:        FieldApproval,
		Variations:  []string{"approval", "approved", "approval status", "authorized", "approved by"},
		Required:    false,
		DataType:    "string",
		Description: "Approval status of the purchase order",
	},
}
