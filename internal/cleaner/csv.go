package cleaner

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadRecords decodes a delimited-text sales dataset. The first row must
// be a header naming the input columns; column order does not matter.
// Rows with a wrong field count are tolerated, missing cells read as
// empty strings so the cleaning rules can classify them.
func ReadRecords(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range InputColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}

	cell := func(row []string, col string) string {
		i := idx[col]
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	var records []RawRecord
	line := 1 // header
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++
		records = append(records, RawRecord{
			OrderID:   cell(row, ColumnOrderID),
			Product:   cell(row, ColumnProduct),
			Category:  cell(row, ColumnCategory),
			Quantity:  cell(row, ColumnQuantity),
			Price:     cell(row, ColumnPrice),
			OrderDate: cell(row, ColumnOrderDate),
			Region:    cell(row, ColumnRegion),
			Line:      line,
		})
	}
	return records, nil
}

// WriteRecords encodes cleaned records as CSV with a header row, in the
// output column order. Dates are written as YYYY-MM-DD and money columns
// with two decimal places, so re-cleaning the output is byte-stable.
func WriteRecords(w io.Writer, records []SalesRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(OutputColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.OrderID,
			rec.Product,
			rec.Category,
			strconv.FormatInt(rec.Quantity, 10),
			rec.Price.StringFixed(2),
			rec.OrderDate.String(),
			rec.Region,
			rec.LineTotal.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", rec.OrderID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
