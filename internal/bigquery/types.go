package bigquery

import (
	"context"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

// SalesRow mirrors the retail.sales table populated by the CSV load job.
type SalesRow struct {
	OrderID   string     `bigquery:"order_id"`
	Product   string     `bigquery:"product"`
	Category  string     `bigquery:"category"`
	Quantity  int64      `bigquery:"quantity"`
	Price     *big.Rat   `bigquery:"price"`
	OrderDate civil.Date `bigquery:"order_date"`
	Region    string     `bigquery:"region"`
	LineTotal *big.Rat   `bigquery:"line_total"`
}

// EtlRunRow mirrors the retail.etl_runs table, one row per pipeline
// invocation over one uploaded file.
type EtlRunRow struct {
	RunID      string                 `bigquery:"run_id"`
	GCSURI     string                 `bigquery:"gcs_uri"`
	CleanedURI bigquery.NullString    `bigquery:"cleaned_uri"`
	StartedAt  time.Time              `bigquery:"started_ts"`
	FinishedAt bigquery.NullTimestamp `bigquery:"finished_ts"`

	Status       string `bigquery:"status"` // RUNNING, SUCCESS, FAILED
	ErrorMessage string `bigquery:"error_message"`

	// Cleaning report counters (NULL while the run is still going)
	RowsInput      bigquery.NullInt64 `bigquery:"rows_input"`
	RowsKept       bigquery.NullInt64 `bigquery:"rows_kept"`
	RowsDuplicate  bigquery.NullInt64 `bigquery:"rows_duplicate"`
	RowsIncomplete bigquery.NullInt64 `bigquery:"rows_incomplete"`
	RowsBadDate    bigquery.NullInt64 `bigquery:"rows_bad_date"`
	RowsBadNumeric bigquery.NullInt64 `bigquery:"rows_bad_numeric"`
}

// RunCounts carries the cleaning report counters into the etl_runs row.
type RunCounts struct {
	Input             int
	Kept              int
	Duplicates        int
	Incomplete        int
	MalformedDates    int
	MalformedNumerics int
}

// RegionTotalsRow is one row of the sales summary query.
type RegionTotalsRow struct {
	Region  string   `bigquery:"region"`
	Orders  int64    `bigquery:"orders"`
	Units   int64    `bigquery:"units"`
	Revenue *big.Rat `bigquery:"revenue"`
}

// WarehouseRepository is the interface for warehouse-side operations:
// run tracking, the bulk load of cleaned files and reporting queries.
// This abstraction enables mocking in pipeline and handler tests.
type WarehouseRepository interface {
	// StartEtlRun inserts an etl_runs row with status=RUNNING and returns its id.
	StartEtlRun(ctx context.Context, gcsURI string) (string, error)

	// MarkEtlRunFailed updates an etl_runs row to status=FAILED.
	// Best effort: failures are logged, not returned.
	MarkEtlRunFailed(ctx context.Context, runID string, runErr error)

	// MarkEtlRunSucceeded updates an etl_runs row to status=SUCCESS with the
	// cleaned object URI and the report counters. cleanedURI may be empty when
	// the batch produced no surviving records.
	MarkEtlRunSucceeded(ctx context.Context, runID, cleanedURI string, counts RunCounts) error

	// LoadCleanedCSV bulk-loads a cleaned CSV object into the sales table.
	LoadCleanedCSV(ctx context.Context, gcsURI string) error

	// ListRecentRuns returns the most recent etl_runs rows, newest first.
	ListRecentRuns(ctx context.Context, limit int) ([]*EtlRunRow, error)

	// TotalsByRegion aggregates loaded sales between two dates inclusive.
	TotalsByRegion(ctx context.Context, start, end civil.Date) ([]*RegionTotalsRow, error)

	// Close releases the underlying client.
	Close() error
}
