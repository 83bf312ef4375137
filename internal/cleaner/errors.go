package cleaner

import "fmt"

// MalformedDateError reports an order_date value that none of the
// accepted input formats could parse.
type MalformedDateError struct {
	OrderID string
	Value   string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("order %s: unparseable order_date %q", e.OrderID, e.Value)
}

// MalformedNumericError reports a quantity or price value that could not
// be parsed as a number. Field names the offending column.
type MalformedNumericError struct {
	OrderID string
	Field   string
	Value   string
}

func (e *MalformedNumericError) Error() string {
	return fmt.Sprintf("order %s: unparseable %s %q", e.OrderID, e.Field, e.Value)
}

// DropReason classifies why a record was excluded from the cleaned output.
type DropReason string

const (
	// DropDuplicate: a later record shared an order_id with an earlier one.
	// Not an error condition, the keep-first rule resolves it.
	DropDuplicate DropReason = "duplicate"
	// DropIncomplete: order_id, product or order_date was missing.
	DropIncomplete DropReason = "incomplete"
	// DropMalformedDate: order_date did not parse under any accepted format.
	DropMalformedDate DropReason = "malformed_date"
	// DropMalformedNumeric: quantity or price did not parse as a number.
	DropMalformedNumeric DropReason = "malformed_numeric"
)

// DroppedRecord describes one record excluded from the output.
type DroppedRecord struct {
	Line    int
	OrderID string
	Reason  DropReason
	Err     error // set for malformed dates and numerics, nil otherwise
}
