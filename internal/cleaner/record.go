package cleaner

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Column names of the raw sales CSV, in file order.
const (
	ColumnOrderID   = "order_id"
	ColumnProduct   = "product"
	ColumnCategory  = "category"
	ColumnQuantity  = "quantity"
	ColumnPrice     = "price"
	ColumnOrderDate = "order_date"
	ColumnRegion    = "region"
	ColumnLineTotal = "line_total"
)

// InputColumns is the expected header of an uploaded sales file.
var InputColumns = []string{
	ColumnOrderID,
	ColumnProduct,
	ColumnCategory,
	ColumnQuantity,
	ColumnPrice,
	ColumnOrderDate,
	ColumnRegion,
}

// OutputColumns is the header of a cleaned sales file: the input columns
// plus the derived line_total.
var OutputColumns = []string{
	ColumnOrderID,
	ColumnProduct,
	ColumnCategory,
	ColumnQuantity,
	ColumnPrice,
	ColumnOrderDate,
	ColumnRegion,
	ColumnLineTotal,
}

// RawRecord is one row of an uploaded sales file before any cleaning.
// All fields are kept as the strings read from the CSV; Line is the
// 1-based line number in the source file (the header is line 1) so that
// drop reports can point back at the original row.
type RawRecord struct {
	OrderID   string
	Product   string
	Category  string
	Quantity  string
	Price     string
	OrderDate string
	Region    string
	Line      int
}

// SalesRecord is one cleaned, typed sales row.
// Price and LineTotal use exact decimal arithmetic, and LineTotal is
// always Quantity * Price.
type SalesRecord struct {
	OrderID   string
	Product   string
	Category  string
	Quantity  int64
	Price     decimal.Decimal
	OrderDate civil.Date
	Region    string
	LineTotal decimal.Decimal
}
