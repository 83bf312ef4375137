package cleaner

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadRecords(t *testing.T) {
	input := strings.Join([]string{
		"order_id,product,category,quantity,price,order_date,region",
		"1001,Blue T-Shirt,Apparel,2,30.00,2025-09-01,singapore",
		"1002,Red Mug,Home,1,7.50,2025-09-02,thailand",
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].OrderID != "1001" || records[0].Product != "Blue T-Shirt" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[0].Line != 2 || records[1].Line != 3 {
		t.Errorf("line numbers = %d,%d, want 2,3", records[0].Line, records[1].Line)
	}
}

func TestReadRecords_HeaderOrderIndependent(t *testing.T) {
	input := strings.Join([]string{
		"region,order_date,price,quantity,category,product,order_id",
		"singapore,2025-09-01,30.00,2,Apparel,Blue T-Shirt,1001",
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].OrderID != "1001" || records[0].Region != "singapore" || records[0].Price != "30.00" {
		t.Errorf("columns mapped wrong: %+v", records[0])
	}
}

func TestReadRecords_RaggedRow(t *testing.T) {
	input := strings.Join([]string{
		"order_id,product,category,quantity,price,order_date,region",
		"1001,Blue T-Shirt,Apparel,2,30.00", // truncated row
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].OrderDate != "" || records[0].Region != "" {
		t.Errorf("missing cells should read empty, got %+v", records[0])
	}
}

func TestReadRecords_MissingColumn(t *testing.T) {
	input := "order_id,product,category,quantity,price,region\n1001,Mug,Home,1,7.50,thailand\n"

	_, err := ReadRecords(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "order_date") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestReadRecords_Empty(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestWriteRecords_RoundTrip(t *testing.T) {
	records := []RawRecord{
		rawRecord("1001", "Blue T-Shirt", "2", "30.00", "2025-09-01", "singapore"),
	}
	cleaned, _ := Clean(records)

	var buf bytes.Buffer
	if err := WriteRecords(&buf, cleaned); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "order_id,product,category,quantity,price,order_date,region,line_total" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "1001,Blue T-Shirt,Apparel,2,30.00,2025-09-01,Singapore,60.00" {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestWriteRecords_TwoDecimalMoney(t *testing.T) {
	// Whole-number inputs must still render with two decimal places.
	records := []RawRecord{
		rawRecord("1001", "Laptop Stand", "2", "40", "2025-09-01", "singapore"),
		rawRecord("1002", "Red Mug", "2", "7.5", "2025-09-01", "thailand"),
	}
	cleaned, _ := Clean(records)

	var buf bytes.Buffer
	if err := WriteRecords(&buf, cleaned); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1] != "1001,Laptop Stand,Apparel,2,40.00,2025-09-01,Singapore,80.00" {
		t.Errorf("unexpected row: %s", lines[1])
	}
	if lines[2] != "1002,Red Mug,Apparel,2,7.50,2025-09-01,Thailand,15.00" {
		t.Errorf("unexpected row: %s", lines[2])
	}
}

func TestWriteRecords_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, nil); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	if strings.TrimSpace(buf.String()) != strings.Join(OutputColumns, ",") {
		t.Errorf("empty batch should write only the header, got %q", buf.String())
	}
}
