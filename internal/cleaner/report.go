package cleaner

// Report aggregates per-record outcomes for one cleaned batch.
// A batch that drops every record is still a valid (empty) result; the
// report is how callers observe what was removed without the batch ever
// failing as a whole.
type Report struct {
	Input             int
	Kept              int
	Duplicates        int
	Incomplete        int
	MalformedDates    int
	MalformedNumerics int

	// Dropped holds one entry per excluded record, in input order.
	Dropped []DroppedRecord
}

// DroppedTotal returns the number of records excluded from the output.
func (r *Report) DroppedTotal() int {
	return r.Duplicates + r.Incomplete + r.MalformedDates + r.MalformedNumerics
}

func (r *Report) drop(d DroppedRecord) {
	switch d.Reason {
	case DropDuplicate:
		r.Duplicates++
	case DropIncomplete:
		r.Incomplete++
	case DropMalformedDate:
		r.MalformedDates++
	case DropMalformedNumeric:
		r.MalformedNumerics++
	}
	r.Dropped = append(r.Dropped, d)
}
