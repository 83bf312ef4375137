package cleaner

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownRegion is substituted when a record has no region at all.
const UnknownRegion = "Unknown"

// Clean applies the cleaning rules to one batch of raw records and
// returns the surviving typed records together with a report of what
// was dropped. The rules run in a fixed order:
//
//  1. deduplicate by order_id, keeping the first occurrence
//  2. drop records missing order_id, product or order_date
//  3. normalize order_date to an ISO calendar date
//  4. compute line_total = quantity * price in exact decimal arithmetic
//  5. title-case region
//
// A record that fails a rule is dropped and reported; a bad record never
// aborts the batch. Clean is pure and idempotent: re-cleaning its own
// output changes nothing.
func Clean(records []RawRecord) ([]SalesRecord, *Report) {
	report := &Report{Input: len(records)}
	out := make([]SalesRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		orderID := strings.TrimSpace(rec.OrderID)
		product := strings.TrimSpace(rec.Product)
		orderDate := strings.TrimSpace(rec.OrderDate)

		// Rule 1: keep-first dedup. A record with no order_id cannot be a
		// duplicate; it falls through to the completeness check below.
		if orderID != "" {
			if _, dup := seen[orderID]; dup {
				report.drop(DroppedRecord{Line: rec.Line, OrderID: orderID, Reason: DropDuplicate})
				continue
			}
			seen[orderID] = struct{}{}
		}

		// Rule 2: completeness.
		if orderID == "" || product == "" || orderDate == "" {
			report.drop(DroppedRecord{Line: rec.Line, OrderID: orderID, Reason: DropIncomplete})
			continue
		}

		// Rule 3: date normalization.
		date, err := ParseOrderDate(orderDate)
		if err != nil {
			report.drop(DroppedRecord{
				Line:    rec.Line,
				OrderID: orderID,
				Reason:  DropMalformedDate,
				Err:     &MalformedDateError{OrderID: orderID, Value: orderDate},
			})
			continue
		}

		// Rule 4: numeric fields and the derived line_total.
		quantity, err := strconv.ParseInt(strings.TrimSpace(rec.Quantity), 10, 64)
		if err != nil {
			report.drop(DroppedRecord{
				Line:    rec.Line,
				OrderID: orderID,
				Reason:  DropMalformedNumeric,
				Err:     &MalformedNumericError{OrderID: orderID, Field: ColumnQuantity, Value: rec.Quantity},
			})
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec.Price))
		if err != nil {
			report.drop(DroppedRecord{
				Line:    rec.Line,
				OrderID: orderID,
				Reason:  DropMalformedNumeric,
				Err:     &MalformedNumericError{OrderID: orderID, Field: ColumnPrice, Value: rec.Price},
			})
			continue
		}
		lineTotal := price.Mul(decimal.NewFromInt(quantity))

		// Rule 5: region title case.
		region := NormalizeRegion(rec.Region)

		out = append(out, SalesRecord{
			OrderID:   orderID,
			Product:   product,
			Category:  strings.TrimSpace(rec.Category),
			Quantity:  quantity,
			Price:     price,
			OrderDate: date,
			Region:    region,
			LineTotal: lineTotal,
		})
		report.Kept++
	}

	return out, report
}

// NormalizeRegion rewrites a free-form region string to title case.
// An empty region becomes UnknownRegion.
func NormalizeRegion(region string) string {
	region = strings.TrimSpace(region)
	if region == "" {
		return UnknownRegion
	}
	return cases.Title(language.Und).String(strings.ToLower(region))
}
